// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import (
	"context"
	"time"
)

// Repository defines the data access contract for issues and the
// collections they own. Every multi-step mutation (replace, regenerate,
// publish, unpublish) runs inside a single storage transaction: a failed
// call leaves pages, blocks, spreads, and counters untouched.
type Repository interface {

	// Create persists a new draft issue. The issue number is assigned
	// inside the insert as the next free number within the zine.
	Create(context context.Context, issue *Issue) error

	// FindByID returns the issue with the given ID.
	FindByID(context context.Context, id string) (*Issue, error)

	// ListByZine returns all issues of a zine ordered by issue number.
	ListByZine(context context.Context, zineID string) ([]*Issue, error)

	// Ownership resolves the projection used for authorization and
	// public URL composition in one query.
	Ownership(context context.Context, issueID string) (*Ownership, error)

	// ZineOwnerUserID resolves the account owning a zine's publisher.
	ZineOwnerUserID(context context.Context, zineID string) (string, error)

	// ListPages returns the issue's pages with their blocks, ordered by
	// page number (blocks ordered by z-index, then insertion order).
	ListPages(context context.Context, issueID string) ([]*Page, error)

	// ListPageIDs returns the page IDs ordered by page number.
	ListPageIDs(context context.Context, issueID string) ([]string, error)

	// ListSpreads returns the issue's spreads ordered by spread number.
	ListSpreads(context context.Context, issueID string) ([]*Spread, error)

	// ReplaceDocument atomically rewrites the issue's content: deletes
	// all pages (cascading to blocks) and spreads, inserts the given
	// pages and spreads, updates the title, and recomputes PageCount and
	// SpreadCount from what was written. Returns the updated issue.
	ReplaceDocument(context context.Context, issueID, title string, pages []*Page, spreads []*Spread) (*Issue, error)

	// ReplaceSpreads atomically rewrites only the derived spread set and
	// recomputes both counters on the issue. Returns the updated issue.
	ReplaceSpreads(context context.Context, issueID string, spreads []*Spread) (*Issue, error)

	// Publish atomically rewrites the spread set, stamps publishedAt,
	// and recomputes the parent zine's published-issue count.
	Publish(context context.Context, issueID string, spreads []*Spread, publishedAt time.Time) (*Issue, error)

	// Unpublish atomically clears publishedAt and recomputes the parent
	// zine's published-issue count.
	Unpublish(context context.Context, issueID string) (*Issue, error)

	// Delete removes the issue and everything it owns.
	Delete(context context.Context, issueID string) error
}
