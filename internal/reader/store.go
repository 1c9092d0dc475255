// Copyright (c) 2026 Zinery. All rights reserved.

package reader

import "context"

// Zine is the internal resolution record for the reading surface; it
// carries the password hash for the unlock flow and is never serialized
// directly.
type Zine struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	Visibility   string
	PasswordHash *string
	IssueCount   int
}

// Repository defines read-only access to published content.
type Repository interface {

	// FindPublisher resolves a publisher's public projection by handle.
	FindPublisher(context context.Context, handle string) (*PublisherView, error)

	// ListListedZines returns a publisher's zines that appear in public
	// listings: PUBLIC and PASSWORD, never UNLISTED.
	ListListedZines(context context.Context, handle string) ([]*ZineView, error)

	// FindZine resolves a zine by handle and slug regardless of
	// visibility; the service decides what the caller may see.
	FindZine(context context.Context, handle, slug string) (*Zine, error)

	// ListPublishedIssues returns a zine's published issues, newest
	// number first.
	ListPublishedIssues(context context.Context, zineID string) ([]*IssueListing, error)

	// FindPublishedIssue resolves a published issue with its full spread
	// layout and resolved page content. Draft issues are invisible here.
	FindPublishedIssue(context context.Context, zineID string, issueNumber int) (*IssueView, error)
}
