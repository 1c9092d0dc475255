// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/pkg/slice"
	"github.com/zinery/zinery/pkg/uuid"
)

// Service is the issue lifecycle controller. Every mutation passes the
// ownership gate first; document replacement, spread regeneration, and
// counter propagation happen inside the repository's transactions.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new issue [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Creation & Retrieval

/*
Create opens a new draft issue in one of the caller's zines.

The issue number is the next free number within the zine, assigned at
insert time.
*/
func (service *Service) Create(context context.Context, userID, zineID, title string) (*Issue, error) {
	ownerID, err := service.repository.ZineOwnerUserID(context, zineID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, apperr.Forbidden("You do not own this zine")
	}

	issue := &Issue{
		ID:     uuid.New(),
		ZineID: zineID,
		Title:  title,
	}

	if err := service.repository.Create(context, issue); err != nil {
		return nil, err
	}

	service.logger.Info("issue_created",
		slog.String("issue_id", issue.ID),
		slog.String("zine_id", zineID),
		slog.Int("issue_number", issue.IssueNumber),
	)

	return issue, nil
}

// Get returns an issue the caller owns.
func (service *Service) Get(context context.Context, userID, issueID string) (*Issue, error) {
	if _, err := service.RequireOwnership(context, userID, issueID); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, issueID)
}

// ListByZine returns every issue of an owned zine, ordered by number.
func (service *Service) ListByZine(context context.Context, userID, zineID string) ([]*Issue, error) {
	ownerID, err := service.repository.ZineOwnerUserID(context, zineID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, apperr.Forbidden("You do not own this zine")
	}
	return service.repository.ListByZine(context, zineID)
}

// GetDocument loads the issue's pages and blocks and maps them back into
// the builder document the editor works with.
func (service *Service) GetDocument(context context.Context, userID, issueID string) (*DocumentState, error) {
	if _, err := service.RequireOwnership(context, userID, issueID); err != nil {
		return nil, err
	}

	issue, err := service.repository.FindByID(context, issueID)
	if err != nil {
		return nil, err
	}

	pages, err := service.repository.ListPages(context, issueID)
	if err != nil {
		return nil, err
	}

	return ToDocument(issue.Title, pages), nil
}

// GetSpreads returns the issue's current derived spread layout.
func (service *Service) GetSpreads(context context.Context, userID, issueID string) ([]*Spread, error) {
	if _, err := service.RequireOwnership(context, userID, issueID); err != nil {
		return nil, err
	}
	return service.repository.ListSpreads(context, issueID)
}

// # Document Lifecycle

/*
Save replaces an issue's entire document with the submitted builder state.

Description: Validates ownership and document structure before any
mutation. The previous pages and blocks are discarded wholesale and
rebuilt from the submitted order (array index + 1 = page number), the
spread layout is re-derived from the new page sequence, the title is
taken from the document, and both counters are recomputed — all within
one storage transaction. There is no merging: the last save to commit
wins outright.

Returns:
  - Summary: refreshed identifiers and counters
  - error: NotFound, Forbidden, ValidationError, or storage failures
*/
func (service *Service) Save(context context.Context, userID, issueID string, document *DocumentState) (Summary, error) {
	if _, err := service.RequireOwnership(context, userID, issueID); err != nil {
		return Summary{}, err
	}

	pages, err := FromDocument(issueID, document)
	if err != nil {
		return Summary{}, err
	}

	pageIDs := slice.Map(pages, func(page *Page) string { return page.ID })
	spreads := DeriveSpreads(pageIDs)

	issue, err := service.repository.ReplaceDocument(context, issueID, document.Title, pages, spreads)
	if err != nil {
		return Summary{}, err
	}

	service.logger.Info("issue_saved",
		slog.String("issue_id", issue.ID),
		slog.Int("page_count", issue.PageCount),
		slog.Int("spread_count", issue.SpreadCount),
	)

	return issue.Summarize(), nil
}

/*
RegenerateSpreads re-derives the spread layout from the issue's current
page sequence and refreshes both counters.

Calling it with no page changes in between is idempotent: the derived
layout is a pure function of the page-id order.
*/
func (service *Service) RegenerateSpreads(context context.Context, userID, issueID string) (Summary, error) {
	if _, err := service.RequireOwnership(context, userID, issueID); err != nil {
		return Summary{}, err
	}

	pageIDs, err := service.repository.ListPageIDs(context, issueID)
	if err != nil {
		return Summary{}, err
	}

	issue, err := service.repository.ReplaceSpreads(context, issueID, DeriveSpreads(pageIDs))
	if err != nil {
		return Summary{}, err
	}

	service.logger.Info("spreads_regenerated",
		slog.String("issue_id", issue.ID),
		slog.Int("spread_count", issue.SpreadCount),
	)

	return issue.Summarize(), nil
}

// # Publish State

// PublishResult is the response of a successful publish.
type PublishResult struct {
	Issue     Summary `json:"issue"`
	PublicURL string  `json:"public_url"`
}

/*
Publish makes a draft issue publicly readable.

Description: Rejected outright when the issue is already published or has
zero pages — publishing is not idempotent. On success the spreads are
re-derived, publishedAt is stamped, and the parent zine's issue count is
recomputed, all in one transaction. The public URL is composed from the
publisher handle, zine slug, and issue number.
*/
func (service *Service) Publish(context context.Context, userID, issueID string) (*PublishResult, error) {
	ownership, err := service.RequireOwnership(context, userID, issueID)
	if err != nil {
		return nil, err
	}

	if ownership.PublishedAt != nil {
		return nil, apperr.Conflict("Issue is already published")
	}

	pageIDs, err := service.repository.ListPageIDs(context, issueID)
	if err != nil {
		return nil, err
	}
	if len(pageIDs) == 0 {
		return nil, apperr.Conflict("Cannot publish an issue with no pages")
	}

	issue, err := service.repository.Publish(context, issueID, DeriveSpreads(pageIDs), time.Now())
	if err != nil {
		return nil, err
	}

	publicURL := fmt.Sprintf("/%s/%s/%d",
		ownership.PublisherHandle, ownership.ZineSlug, ownership.IssueNumber)

	service.logger.Info("issue_published",
		slog.String("issue_id", issue.ID),
		slog.String("public_url", publicURL),
	)

	return &PublishResult{
		Issue:     issue.Summarize(),
		PublicURL: publicURL,
	}, nil
}

// Unpublish returns a published issue to draft and recomputes the parent
// zine's issue count. Rejected when the issue is already a draft.
func (service *Service) Unpublish(context context.Context, userID, issueID string) (Summary, error) {
	ownership, err := service.RequireOwnership(context, userID, issueID)
	if err != nil {
		return Summary{}, err
	}

	if ownership.PublishedAt == nil {
		return Summary{}, apperr.Conflict("Issue is not published")
	}

	issue, err := service.repository.Unpublish(context, issueID)
	if err != nil {
		return Summary{}, err
	}

	service.logger.Info("issue_unpublished", slog.String("issue_id", issue.ID))

	return issue.Summarize(), nil
}

// Delete removes a draft issue and everything it owns. Published issues
// are immutable to deletion and must be unpublished first.
func (service *Service) Delete(context context.Context, userID, issueID string) error {
	ownership, err := service.RequireOwnership(context, userID, issueID)
	if err != nil {
		return err
	}

	if ownership.PublishedAt != nil {
		return apperr.Conflict("Cannot delete a published issue; unpublish it first")
	}

	if err := service.repository.Delete(context, issueID); err != nil {
		return err
	}

	service.logger.Info("issue_deleted", slog.String("issue_id", issueID))
	return nil
}

// # Authorization

// RequireOwnership loads the ownership projection for an issue and
// verifies the caller owns it. A missing issue is NotFound; an issue
// owned by someone else is Forbidden.
func (service *Service) RequireOwnership(context context.Context, userID, issueID string) (*Ownership, error) {
	ownership, err := service.repository.Ownership(context, issueID)
	if err != nil {
		return nil, err
	}
	if ownership.OwnerUserID != userID {
		return nil, apperr.Forbidden("You do not own this issue")
	}
	return ownership, nil
}
