// Copyright (c) 2026 Zinery. All rights reserved.

package reader_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/sec"
	"github.com/zinery/zinery/internal/reader"
	"github.com/zinery/zinery/internal/zine"
)

// # Fakes

type fakeRepository struct {
	zines  map[string]*reader.Zine
	issues map[string]map[int]*reader.IssueView
}

func (repository *fakeRepository) FindPublisher(_ context.Context, handle string) (*reader.PublisherView, error) {
	return &reader.PublisherView{Handle: handle}, nil
}

func (repository *fakeRepository) ListListedZines(_ context.Context, _ string) ([]*reader.ZineView, error) {
	return nil, nil
}

func (repository *fakeRepository) FindZine(_ context.Context, _, slug string) (*reader.Zine, error) {
	record, ok := repository.zines[slug]
	if !ok {
		return nil, apperr.NotFound("Zine")
	}
	return record, nil
}

func (repository *fakeRepository) ListPublishedIssues(_ context.Context, _ string) ([]*reader.IssueListing, error) {
	return nil, nil
}

func (repository *fakeRepository) FindPublishedIssue(_ context.Context, zineID string, issueNumber int) (*reader.IssueView, error) {
	view, ok := repository.issues[zineID][issueNumber]
	if !ok {
		return nil, apperr.NotFound("Issue")
	}
	return view, nil
}

// fakeGrantRepository keeps grants in a map, keyed by hashed token.
type fakeGrantRepository struct {
	grants map[string]string
}

func (repository *fakeGrantRepository) Set(_ context.Context, tokenHash, zineID string, _ time.Duration) error {
	repository.grants[tokenHash] = zineID
	return nil
}

func (repository *fakeGrantRepository) Get(_ context.Context, tokenHash string) (string, error) {
	zineID, ok := repository.grants[tokenHash]
	if !ok {
		return "", apperr.NotFound("Access grant")
	}
	return zineID, nil
}

// # Fixtures

func newReaderService(t *testing.T, zines ...*reader.Zine) (*reader.Service, *fakeGrantRepository) {
	t.Helper()

	repository := &fakeRepository{
		zines:  make(map[string]*reader.Zine),
		issues: make(map[string]map[int]*reader.IssueView),
	}
	for _, record := range zines {
		repository.zines[record.Slug] = record
		repository.issues[record.ID] = map[int]*reader.IssueView{
			1: {Title: "First", IssueNumber: 1},
		}
	}

	grants := &fakeGrantRepository{grants: make(map[string]string)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return reader.NewService(repository, grants, logger), grants
}

func protectedZine(t *testing.T, password string) *reader.Zine {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &reader.Zine{
		ID:           "zine-locked",
		Slug:         "locked",
		Title:        "Locked",
		Visibility:   string(zine.VisibilityPassword),
		PasswordHash: &hash,
	}
}

// # Tests

/*
TestService_GetZine_Visibility verifies the per-visibility access rules
on the public zine page.
*/
func TestService_GetZine_Visibility(t *testing.T) {
	public := &reader.Zine{ID: "zine-pub", Slug: "open", Visibility: string(zine.VisibilityPublic)}
	unlisted := &reader.Zine{ID: "zine-unl", Slug: "hidden", Visibility: string(zine.VisibilityUnlisted)}
	locked := protectedZine(t, "hunter42")

	service, _ := newReaderService(t, public, unlisted, locked)

	t.Run("public_readable", func(t *testing.T) {
		page, err := service.GetZine(context.Background(), "inkwell", "open", "")
		require.NoError(t, err)
		assert.Equal(t, "open", page.Zine.Slug)
	})

	t.Run("unlisted_readable_by_direct_link", func(t *testing.T) {
		page, err := service.GetZine(context.Background(), "inkwell", "hidden", "")
		require.NoError(t, err)
		assert.Equal(t, "hidden", page.Zine.Slug)
	})

	t.Run("password_without_grant_forbidden", func(t *testing.T) {
		_, err := service.GetZine(context.Background(), "inkwell", "locked", "")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("missing_zine_not_found", func(t *testing.T) {
		_, err := service.GetZine(context.Background(), "inkwell", "nope", "")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_Unlock verifies the password exchange: a correct password
yields a grant that unlocks the zine, a wrong one does not, and
unlocking an unprotected zine is a conflict.
*/
func TestService_Unlock(t *testing.T) {
	public := &reader.Zine{ID: "zine-pub", Slug: "open", Visibility: string(zine.VisibilityPublic)}
	locked := protectedZine(t, "hunter42")
	service, grants := newReaderService(t, public, locked)

	t.Run("correct_password_issues_grant", func(t *testing.T) {
		token, err := service.Unlock(context.Background(), "inkwell", "locked", "hunter42")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		// The raw token is never stored; only its hash is.
		assert.NotContains(t, grants.grants, token)
		assert.Equal(t, "zine-locked", grants.grants[sec.HashToken(token)])

		page, err := service.GetZine(context.Background(), "inkwell", "locked", token)
		require.NoError(t, err)
		assert.Equal(t, "locked", page.Zine.Slug)

		view, err := service.GetIssue(context.Background(), "inkwell", "locked", 1, token)
		require.NoError(t, err)
		assert.Equal(t, 1, view.IssueNumber)
	})

	t.Run("wrong_password_unauthorized", func(t *testing.T) {
		_, err := service.Unlock(context.Background(), "inkwell", "locked", "wrong")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unprotected_zine_conflict", func(t *testing.T) {
		_, err := service.Unlock(context.Background(), "inkwell", "open", "anything")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_GrantScoping verifies a grant issued for one zine does not
unlock another.
*/
func TestService_GrantScoping(t *testing.T) {
	first := protectedZine(t, "alpha-pass")
	second := &reader.Zine{
		ID:           "zine-other",
		Slug:         "other",
		Visibility:   string(zine.VisibilityPassword),
		PasswordHash: first.PasswordHash,
	}
	service, _ := newReaderService(t, first, second)

	token, err := service.Unlock(context.Background(), "inkwell", "locked", "alpha-pass")
	require.NoError(t, err)

	_, err = service.GetZine(context.Background(), "inkwell", "other", token)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	_, err = service.GetIssue(context.Background(), "inkwell", "other", 1, token)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Garbage tokens behave like missing grants.
	_, err = service.GetZine(context.Background(), "inkwell", "locked", "forged-token")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}
