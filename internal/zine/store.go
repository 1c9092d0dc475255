// Copyright (c) 2026 Zinery. All rights reserved.

package zine

import "context"

// Repository defines the data access contract for zines.
type Repository interface {

	// Create persists a new zine.
	Create(context context.Context, zine *Zine) error

	// FindByID returns the zine with the given ID.
	FindByID(context context.Context, id string) (*Zine, error)

	// FindBySlug returns the zine with the given slug under a publisher.
	FindBySlug(context context.Context, publisherID, slug string) (*Zine, error)

	// ListByPublisher returns a page of the publisher's zines, newest
	// first, along with the total count for pagination.
	ListByPublisher(context context.Context, publisherID string, limit, offset int) ([]*Zine, int, error)

	// Update persists metadata and visibility changes.
	Update(context context.Context, zine *Zine) error

	// Delete removes a zine and cascades to its issues.
	Delete(context context.Context, id string) error

	// OwnerUserID resolves the user account that owns the zine's publisher.
	OwnerUserID(context context.Context, zineID string) (string, error)
}
