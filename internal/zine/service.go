// Copyright (c) 2026 Zinery. All rights reserved.

package zine

import (
	"context"
	"fmt"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/sec"
	"github.com/zinery/zinery/internal/publisher"
	"github.com/zinery/zinery/pkg/slug"
	"github.com/zinery/zinery/pkg/uuid"
)

// Service implements zine management use cases.
type Service struct {
	repository       Repository
	publisherService *publisher.Service
}

// NewService constructs a new zine [Service].
func NewService(repository Repository, publisherService *publisher.Service) *Service {
	return &Service{
		repository:       repository,
		publisherService: publisherService,
	}
}

// CreateInput holds the data required to start a new zine.
type CreateInput struct {
	Title       string
	Description string
	Visibility  Visibility
	Password    string
}

/*
Create starts a new zine under the caller's publisher.

Description: The slug is derived from the title and must be unique within
the publisher. When visibility is PASSWORD a reader password is required
and stored hashed; for other visibilities any provided password is ignored.

Returns:
  - *Zine: Created zine
  - error: NotFound (no publisher profile), ValidationError, or Conflict
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Zine, error) {
	owner, err := service.publisherService.RequireOwned(context, userID)
	if err != nil {
		return nil, err
	}

	zineSlug := slug.From(input.Title)
	if zineSlug == "" {
		return nil, apperr.ValidationError("Title must contain at least one letter or digit")
	}

	if input.Visibility == "" {
		input.Visibility = VisibilityPublic
	}
	if !input.Visibility.Valid() {
		return nil, apperr.ValidationError("Unknown visibility value")
	}

	zine := &Zine{
		ID:          uuid.New(),
		PublisherID: owner.ID,
		Slug:        zineSlug,
		Title:       input.Title,
		Description: input.Description,
		Visibility:  input.Visibility,
	}

	if input.Visibility == VisibilityPassword {
		if input.Password == "" {
			return nil, apperr.ValidationError("A reader password is required for password-protected zines")
		}
		hash, err := sec.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("zine_service_password_hash_failed: %w", err)
		}
		zine.PasswordHash = &hash
	}

	if err := service.repository.Create(context, zine); err != nil {
		return nil, err
	}

	return zine, nil
}

// ListMine returns a page of the caller's zines, newest first, with the
// total count.
func (service *Service) ListMine(context context.Context, userID string, limit, offset int) ([]*Zine, int, error) {
	owner, err := service.publisherService.RequireOwned(context, userID)
	if err != nil {
		return nil, 0, err
	}
	return service.repository.ListByPublisher(context, owner.ID, limit, offset)
}

// Get returns a zine the caller owns.
func (service *Service) Get(context context.Context, userID, zineID string) (*Zine, error) {
	return service.requireOwnership(context, userID, zineID)
}

// UpdateInput holds mutable zine fields. Nil pointers leave the field as-is.
type UpdateInput struct {
	Title       *string
	Description *string
	Visibility  *Visibility
	Password    *string
}

/*
Update applies metadata and visibility changes to an owned zine.

The slug never changes after creation: published issue URLs embed it.
Switching visibility to PASSWORD requires a password in the same call
unless one is already set; switching away clears the stored hash.
*/
func (service *Service) Update(context context.Context, userID, zineID string, input UpdateInput) (*Zine, error) {
	zine, err := service.requireOwnership(context, userID, zineID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		zine.Title = *input.Title
	}
	if input.Description != nil {
		zine.Description = *input.Description
	}
	if input.Visibility != nil {
		if !input.Visibility.Valid() {
			return nil, apperr.ValidationError("Unknown visibility value")
		}
		zine.Visibility = *input.Visibility
	}

	if zine.Visibility == VisibilityPassword {
		if input.Password != nil && *input.Password != "" {
			hash, err := sec.HashPassword(*input.Password)
			if err != nil {
				return nil, fmt.Errorf("zine_service_password_hash_failed: %w", err)
			}
			zine.PasswordHash = &hash
		}
		if zine.PasswordHash == nil {
			return nil, apperr.ValidationError("A reader password is required for password-protected zines")
		}
	} else {
		zine.PasswordHash = nil
	}

	if err := service.repository.Update(context, zine); err != nil {
		return nil, err
	}

	return zine, nil
}

/*
Delete removes an owned zine together with all of its issues.

Published issues cascade away with the zine; deleting a whole zine is an
explicit publisher decision, unlike deleting a single published issue
which stays blocked until unpublished.
*/
func (service *Service) Delete(context context.Context, userID, zineID string) error {
	if _, err := service.requireOwnership(context, userID, zineID); err != nil {
		return err
	}
	return service.repository.Delete(context, zineID)
}

// requireOwnership loads a zine and verifies the caller owns it.
//
// A zine that exists but belongs to someone else returns Forbidden, not
// NotFound: zine IDs are not secret, only their drafts are.
func (service *Service) requireOwnership(context context.Context, userID, zineID string) (*Zine, error) {
	zine, err := service.repository.FindByID(context, zineID)
	if err != nil {
		return nil, err
	}

	ownerID, err := service.repository.OwnerUserID(context, zineID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, apperr.Forbidden("You do not own this zine")
	}

	return zine, nil
}
