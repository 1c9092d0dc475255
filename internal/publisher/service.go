// Copyright (c) 2026 Zinery. All rights reserved.

package publisher

import (
	"context"
	"fmt"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/pkg/slug"
	"github.com/zinery/zinery/pkg/uuid"
)

// Service implements publisher profile use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new publisher [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data required to open a publisher profile.
type CreateInput struct {
	Handle      string
	DisplayName string
	Bio         string
}

/*
Create opens the publisher profile for a user account.

Description: Each account may own at most one publisher. The handle is
normalized to a lowercase slug and must be unique platform-wide since it
anchors every public issue URL.

Returns:
  - *Publisher: Created profile
  - error: Conflict when the user already has a profile or the handle is taken
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Publisher, error) {
	// One profile per account, checked up-front for a clean error message.
	// The UNIQUE constraint on userid is the real guarantee.
	if _, err := service.repository.FindByUserID(context, userID); err == nil {
		return nil, apperr.Conflict("User already has a publisher profile")
	}

	handle := slug.From(input.Handle)
	if handle == "" {
		return nil, apperr.ValidationError("Handle must contain at least one letter or digit")
	}

	publisher := &Publisher{
		ID:          uuid.New(),
		UserID:      userID,
		Handle:      handle,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
	}

	if publisher.DisplayName == "" {
		publisher.DisplayName = handle
	}

	if err := service.repository.Create(context, publisher); err != nil {
		return nil, err
	}

	return publisher, nil
}

// GetMine returns the caller's own publisher profile.
func (service *Service) GetMine(context context.Context, userID string) (*Publisher, error) {
	return service.repository.FindByUserID(context, userID)
}

// GetByHandle returns a publisher profile by its public handle.
func (service *Service) GetByHandle(context context.Context, handle string) (*Publisher, error) {
	return service.repository.FindByHandle(context, handle)
}

// UpdateInput holds mutable profile fields.
type UpdateInput struct {
	DisplayName *string
	Bio         *string
}

/*
Update applies profile changes to the caller's own publisher.

The handle is immutable once chosen: published URLs embed it, and renames
would break every reader link in circulation.
*/
func (service *Service) Update(context context.Context, userID string, input UpdateInput) (*Publisher, error) {
	publisher, err := service.repository.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		publisher.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		publisher.Bio = *input.Bio
	}

	if err := service.repository.Update(context, publisher); err != nil {
		return nil, fmt.Errorf("publisher_service_update_failed: %w", err)
	}

	return publisher, nil
}

// RequireOwned returns the publisher owned by userID, or NotFound if the
// user never created one.
func (service *Service) RequireOwned(context context.Context, userID string) (*Publisher, error) {
	publisher, err := service.repository.FindByUserID(context, userID)
	if err != nil {
		return nil, apperr.NotFound("Publisher profile")
	}
	return publisher, nil
}
