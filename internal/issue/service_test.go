// Copyright (c) 2026 Zinery. All rights reserved.

package issue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinery/zinery/internal/issue"
	"github.com/zinery/zinery/internal/platform/apperr"
)

// # Fake Repository

// fakeRepository is an in-memory Repository. Mutations are applied only
// when no failure is injected, mirroring the all-or-nothing transaction
// contract of the real store.
type fakeRepository struct {
	issues     map[string]*issue.Issue
	ownerships map[string]*issue.Ownership
	zineOwners map[string]string
	pages      map[string][]*issue.Page
	spreads    map[string][]*issue.Spread

	replaceErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		issues:     make(map[string]*issue.Issue),
		ownerships: make(map[string]*issue.Ownership),
		zineOwners: make(map[string]string),
		pages:      make(map[string][]*issue.Page),
		spreads:    make(map[string][]*issue.Spread),
	}
}

// seedIssue registers an issue with its ownership projection in one call.
func (repository *fakeRepository) seedIssue(record *issue.Issue, ownerUserID, zineSlug, handle string) {
	repository.issues[record.ID] = record
	repository.zineOwners[record.ZineID] = ownerUserID
	repository.ownerships[record.ID] = &issue.Ownership{
		IssueID:         record.ID,
		ZineID:          record.ZineID,
		ZineSlug:        zineSlug,
		PublisherID:     "publisher-1",
		PublisherHandle: handle,
		OwnerUserID:     ownerUserID,
		IssueNumber:     record.IssueNumber,
		PublishedAt:     record.PublishedAt,
	}
}

func (repository *fakeRepository) Create(_ context.Context, record *issue.Issue) error {
	record.IssueNumber = 1
	for _, existing := range repository.issues {
		if existing.ZineID == record.ZineID && existing.IssueNumber >= record.IssueNumber {
			record.IssueNumber = existing.IssueNumber + 1
		}
	}
	repository.issues[record.ID] = record
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*issue.Issue, error) {
	record, ok := repository.issues[id]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}
	return record, nil
}

func (repository *fakeRepository) ListByZine(_ context.Context, zineID string) ([]*issue.Issue, error) {
	records := make([]*issue.Issue, 0)
	for _, record := range repository.issues {
		if record.ZineID == zineID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (repository *fakeRepository) Ownership(_ context.Context, issueID string) (*issue.Ownership, error) {
	ownership, ok := repository.ownerships[issueID]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}
	return ownership, nil
}

func (repository *fakeRepository) ZineOwnerUserID(_ context.Context, zineID string) (string, error) {
	owner, ok := repository.zineOwners[zineID]
	if !ok {
		return "", apperr.NotFound("Zine")
	}
	return owner, nil
}

func (repository *fakeRepository) ListPages(_ context.Context, issueID string) ([]*issue.Page, error) {
	return repository.pages[issueID], nil
}

func (repository *fakeRepository) ListPageIDs(_ context.Context, issueID string) ([]string, error) {
	pageIDs := make([]string, 0, len(repository.pages[issueID]))
	for _, page := range repository.pages[issueID] {
		pageIDs = append(pageIDs, page.ID)
	}
	return pageIDs, nil
}

func (repository *fakeRepository) ListSpreads(_ context.Context, issueID string) ([]*issue.Spread, error) {
	return repository.spreads[issueID], nil
}

func (repository *fakeRepository) ReplaceDocument(_ context.Context, issueID, title string, pages []*issue.Page, spreads []*issue.Spread) (*issue.Issue, error) {
	if repository.replaceErr != nil {
		return nil, repository.replaceErr
	}

	record, ok := repository.issues[issueID]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}

	repository.pages[issueID] = pages
	repository.spreads[issueID] = spreads
	record.Title = title
	record.PageCount = len(pages)
	record.SpreadCount = len(spreads)
	record.UpdatedAt = time.Now()
	return record, nil
}

func (repository *fakeRepository) ReplaceSpreads(_ context.Context, issueID string, spreads []*issue.Spread) (*issue.Issue, error) {
	record, ok := repository.issues[issueID]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}

	repository.spreads[issueID] = spreads
	record.PageCount = len(repository.pages[issueID])
	record.SpreadCount = len(spreads)
	record.UpdatedAt = time.Now()
	return record, nil
}

func (repository *fakeRepository) Publish(_ context.Context, issueID string, spreads []*issue.Spread, publishedAt time.Time) (*issue.Issue, error) {
	record, ok := repository.issues[issueID]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}

	repository.spreads[issueID] = spreads
	record.SpreadCount = len(spreads)
	record.PublishedAt = &publishedAt
	record.UpdatedAt = publishedAt
	return record, nil
}

func (repository *fakeRepository) Unpublish(_ context.Context, issueID string) (*issue.Issue, error) {
	record, ok := repository.issues[issueID]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}

	record.PublishedAt = nil
	record.UpdatedAt = time.Now()
	return record, nil
}

func (repository *fakeRepository) Delete(_ context.Context, issueID string) error {
	if _, ok := repository.issues[issueID]; !ok {
		return apperr.NotFound("Issue")
	}
	delete(repository.issues, issueID)
	delete(repository.ownerships, issueID)
	delete(repository.pages, issueID)
	delete(repository.spreads, issueID)
	return nil
}

// # Fixtures

const (
	ownerID    = "user-owner"
	strangerID = "user-stranger"
)

func newServiceWithIssue(t *testing.T, publishedAt *time.Time) (*issue.Service, *fakeRepository, *issue.Issue) {
	t.Helper()

	repository := newFakeRepository()
	record := &issue.Issue{
		ID:          "issue-1",
		ZineID:      "zine-1",
		IssueNumber: 3,
		Title:       "Spring",
		PublishedAt: publishedAt,
	}
	repository.seedIssue(record, ownerID, "paper-trails", "inkwell")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return issue.NewService(repository, logger), repository, record
}

func singlePageDocument(title string) *issue.DocumentState {
	return &issue.DocumentState{
		Title: title,
		Pages: []*issue.DocumentPage{
			{
				Paper: "cream",
				Elements: []*issue.DocumentElement{
					{Type: "text", X: 90, Y: 120, Width: 450, Height: 300},
				},
			},
		},
	}
}

// # Tests

/*
TestService_OwnershipGate verifies the two distinct authorization
failures on every issue operation: a missing issue is NOT_FOUND and
someone else's issue is FORBIDDEN.
*/
func TestService_OwnershipGate(t *testing.T) {
	service, _, record := newServiceWithIssue(t, nil)

	operations := []struct {
		name string
		call func(userID, issueID string) error
	}{
		{"get", func(userID, issueID string) error {
			_, err := service.Get(context.Background(), userID, issueID)
			return err
		}},
		{"get_document", func(userID, issueID string) error {
			_, err := service.GetDocument(context.Background(), userID, issueID)
			return err
		}},
		{"get_spreads", func(userID, issueID string) error {
			_, err := service.GetSpreads(context.Background(), userID, issueID)
			return err
		}},
		{"save", func(userID, issueID string) error {
			_, err := service.Save(context.Background(), userID, issueID, singlePageDocument("x"))
			return err
		}},
		{"regenerate", func(userID, issueID string) error {
			_, err := service.RegenerateSpreads(context.Background(), userID, issueID)
			return err
		}},
		{"publish", func(userID, issueID string) error {
			_, err := service.Publish(context.Background(), userID, issueID)
			return err
		}},
		{"unpublish", func(userID, issueID string) error {
			_, err := service.Unpublish(context.Background(), userID, issueID)
			return err
		}},
		{"delete", func(userID, issueID string) error {
			return service.Delete(context.Background(), userID, issueID)
		}},
	}

	for _, operation := range operations {
		t.Run(operation.name+"_missing_issue", func(t *testing.T) {
			err := operation.call(ownerID, "no-such-issue")
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
		})

		t.Run(operation.name+"_foreign_issue", func(t *testing.T) {
			err := operation.call(strangerID, record.ID)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "FORBIDDEN", ae.Code)
		})
	}
}

/*
TestService_Create verifies zine ownership gating on creation and that
the assigned issue number comes back on the created record.
*/
func TestService_Create(t *testing.T) {
	service, repository, record := newServiceWithIssue(t, nil)

	t.Run("foreign_zine_forbidden", func(t *testing.T) {
		_, err := service.Create(context.Background(), strangerID, record.ZineID, "Nope")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("missing_zine_not_found", func(t *testing.T) {
		_, err := service.Create(context.Background(), ownerID, "no-such-zine", "Nope")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("assigns_next_number", func(t *testing.T) {
		created, err := service.Create(context.Background(), ownerID, record.ZineID, "Summer")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, record.IssueNumber+1, created.IssueNumber)
		assert.Contains(t, repository.issues, created.ID)
	})
}

/*
TestService_Save verifies the full replace path: the document is mapped
to storage pages, spreads are derived from the new page order, and the
returned counters match the derived layout.
*/
func TestService_Save(t *testing.T) {
	service, repository, record := newServiceWithIssue(t, nil)

	document := &issue.DocumentState{
		Title: "Autumn",
		Pages: []*issue.DocumentPage{
			{Elements: []*issue.DocumentElement{{Type: "text", Width: 10, Height: 10}}},
			{Elements: []*issue.DocumentElement{}},
			{Elements: []*issue.DocumentElement{}},
			{Elements: []*issue.DocumentElement{}},
		},
	}

	summary, err := service.Save(context.Background(), ownerID, record.ID, document)
	require.NoError(t, err)

	assert.Equal(t, record.ID, summary.ID)
	assert.Equal(t, "Autumn", summary.Title)
	assert.Equal(t, 4, summary.PageCount)
	assert.Equal(t, issue.SpreadCountFor(4), summary.SpreadCount)

	storedSpreads := repository.spreads[record.ID]
	require.Len(t, storedSpreads, 3)
	assert.Nil(t, storedSpreads[0].LeftPageID)
	assert.Equal(t, repository.pages[record.ID][0].ID, *storedSpreads[0].RightPageID)
}

/*
TestService_Save_InvalidDocument verifies a structurally invalid
document is rejected before any repository call.
*/
func TestService_Save_InvalidDocument(t *testing.T) {
	service, repository, record := newServiceWithIssue(t, nil)
	repository.pages[record.ID] = []*issue.Page{{ID: "page-keep"}}

	_, err := service.Save(context.Background(), ownerID, record.ID, &issue.DocumentState{
		Pages: []*issue.DocumentPage{
			{Elements: []*issue.DocumentElement{{Width: 10, Height: 10}}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// The previous content must be untouched.
	require.Len(t, repository.pages[record.ID], 1)
	assert.Equal(t, "page-keep", repository.pages[record.ID][0].ID)
}

/*
TestService_Save_StorageFailureLeavesStateUntouched verifies a failed
replace propagates the storage error and leaves nothing half-written.
*/
func TestService_Save_StorageFailureLeavesStateUntouched(t *testing.T) {
	service, repository, record := newServiceWithIssue(t, nil)
	repository.pages[record.ID] = []*issue.Page{{ID: "page-keep"}}
	repository.spreads[record.ID] = []*issue.Spread{{SpreadNumber: 1}}
	repository.replaceErr = errors.New("connection reset")

	_, err := service.Save(context.Background(), ownerID, record.ID, singlePageDocument("Lost"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.replaceErr)

	assert.Equal(t, "Spring", record.Title)
	require.Len(t, repository.pages[record.ID], 1)
	assert.Equal(t, "page-keep", repository.pages[record.ID][0].ID)
	require.Len(t, repository.spreads[record.ID], 1)
}

/*
TestService_RegenerateSpreads verifies regeneration derives the layout
from the stored page order and that a repeat call is idempotent.
*/
func TestService_RegenerateSpreads(t *testing.T) {
	service, repository, record := newServiceWithIssue(t, nil)
	repository.pages[record.ID] = []*issue.Page{
		{ID: "p0"}, {ID: "p1"}, {ID: "p2"},
	}

	first, err := service.RegenerateSpreads(context.Background(), ownerID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, first.PageCount)
	assert.Equal(t, 2, first.SpreadCount)

	layout := make([]issue.Spread, 0, len(repository.spreads[record.ID]))
	for _, spread := range repository.spreads[record.ID] {
		layout = append(layout, *spread)
	}

	second, err := service.RegenerateSpreads(context.Background(), ownerID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, first.SpreadCount, second.SpreadCount)

	require.Len(t, repository.spreads[record.ID], len(layout))
	for i, spread := range repository.spreads[record.ID] {
		assert.Equal(t, layout[i].SpreadNumber, spread.SpreadNumber)
		assertPageRef(t, layout[i].LeftPageID, spread.LeftPageID, "left")
		assertPageRef(t, layout[i].RightPageID, spread.RightPageID, "right")
	}
}

/*
TestService_Publish covers the publish gate: drafts with pages go live
and get a public URL; already-published and empty issues are conflicts.
*/
func TestService_Publish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, repository, record := newServiceWithIssue(t, nil)
		repository.pages[record.ID] = []*issue.Page{{ID: "p0"}, {ID: "p1"}}

		result, err := service.Publish(context.Background(), ownerID, record.ID)
		require.NoError(t, err)

		assert.Equal(t, "/inkwell/paper-trails/3", result.PublicURL)
		require.NotNil(t, result.Issue.PublishedAt)
		assert.True(t, record.Published())
		assert.Len(t, repository.spreads[record.ID], 2)
	})

	t.Run("already_published", func(t *testing.T) {
		publishedAt := time.Now().Add(-time.Hour)
		service, _, record := newServiceWithIssue(t, &publishedAt)

		_, err := service.Publish(context.Background(), ownerID, record.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, "Issue is already published", ae.Message)
	})

	t.Run("zero_pages", func(t *testing.T) {
		service, _, record := newServiceWithIssue(t, nil)

		_, err := service.Publish(context.Background(), ownerID, record.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, "Cannot publish an issue with no pages", ae.Message)
	})
}

/*
TestService_Unpublish verifies a live issue returns to draft and that
unpublishing a draft is a conflict, not a no-op.
*/
func TestService_Unpublish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		publishedAt := time.Now().Add(-time.Hour)
		service, _, record := newServiceWithIssue(t, &publishedAt)

		summary, err := service.Unpublish(context.Background(), ownerID, record.ID)
		require.NoError(t, err)
		assert.Nil(t, summary.PublishedAt)
		assert.False(t, record.Published())
	})

	t.Run("draft_conflict", func(t *testing.T) {
		service, _, record := newServiceWithIssue(t, nil)

		_, err := service.Unpublish(context.Background(), ownerID, record.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, "Issue is not published", ae.Message)
	})
}

/*
TestService_Delete verifies drafts are deletable and published issues
are not.
*/
func TestService_Delete(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		service, repository, record := newServiceWithIssue(t, nil)

		require.NoError(t, service.Delete(context.Background(), ownerID, record.ID))
		assert.NotContains(t, repository.issues, record.ID)
	})

	t.Run("published_conflict", func(t *testing.T) {
		publishedAt := time.Now().Add(-time.Hour)
		service, repository, record := newServiceWithIssue(t, &publishedAt)

		err := service.Delete(context.Background(), ownerID, record.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Contains(t, repository.issues, record.ID)
	})
}
