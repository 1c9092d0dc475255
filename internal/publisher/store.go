// Copyright (c) 2026 Zinery. All rights reserved.

package publisher

import "context"

// Repository defines the data access contract for publisher profiles.
type Repository interface {

	// Create persists a new publisher profile.
	Create(context context.Context, publisher *Publisher) error

	// FindByID returns the publisher with the given ID.
	FindByID(context context.Context, id string) (*Publisher, error)

	// FindByUserID returns the publisher owned by the given user account.
	FindByUserID(context context.Context, userID string) (*Publisher, error)

	// FindByHandle returns the publisher with the given handle.
	// Lookup is case-insensitive; handles are stored lowercase.
	FindByHandle(context context.Context, handle string) (*Publisher, error)

	// Update persists profile changes (display name, bio).
	Update(context context.Context, publisher *Publisher) error
}
