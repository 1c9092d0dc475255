// Copyright (c) 2026 Zinery. All rights reserved.

package zine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/sec"
	"github.com/zinery/zinery/internal/publisher"
	"github.com/zinery/zinery/internal/zine"
)

// # Fakes

type fakePublisherRepository struct {
	byUserID map[string]*publisher.Publisher
}

func (repository *fakePublisherRepository) Create(_ context.Context, record *publisher.Publisher) error {
	repository.byUserID[record.UserID] = record
	return nil
}

func (repository *fakePublisherRepository) FindByID(_ context.Context, _ string) (*publisher.Publisher, error) {
	return nil, apperr.NotFound("Publisher")
}

func (repository *fakePublisherRepository) FindByUserID(_ context.Context, userID string) (*publisher.Publisher, error) {
	record, ok := repository.byUserID[userID]
	if !ok {
		return nil, apperr.NotFound("Publisher")
	}
	return record, nil
}

func (repository *fakePublisherRepository) FindByHandle(_ context.Context, _ string) (*publisher.Publisher, error) {
	return nil, apperr.NotFound("Publisher")
}

func (repository *fakePublisherRepository) Update(_ context.Context, record *publisher.Publisher) error {
	repository.byUserID[record.UserID] = record
	return nil
}

type fakeZineRepository struct {
	zines  map[string]*zine.Zine
	owners map[string]string
}

func (repository *fakeZineRepository) Create(_ context.Context, record *zine.Zine) error {
	for _, existing := range repository.zines {
		if existing.PublisherID == record.PublisherID && existing.Slug == record.Slug {
			return apperr.Conflict("A zine with this slug already exists")
		}
	}
	repository.zines[record.ID] = record
	return nil
}

func (repository *fakeZineRepository) FindByID(_ context.Context, id string) (*zine.Zine, error) {
	record, ok := repository.zines[id]
	if !ok {
		return nil, apperr.NotFound("Zine")
	}
	return record, nil
}

func (repository *fakeZineRepository) FindBySlug(_ context.Context, publisherID, slug string) (*zine.Zine, error) {
	for _, record := range repository.zines {
		if record.PublisherID == publisherID && record.Slug == slug {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Zine")
}

func (repository *fakeZineRepository) ListByPublisher(_ context.Context, publisherID string, _, _ int) ([]*zine.Zine, int, error) {
	records := make([]*zine.Zine, 0)
	for _, record := range repository.zines {
		if record.PublisherID == publisherID {
			records = append(records, record)
		}
	}
	return records, len(records), nil
}

func (repository *fakeZineRepository) Update(_ context.Context, record *zine.Zine) error {
	repository.zines[record.ID] = record
	return nil
}

func (repository *fakeZineRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.zines[id]; !ok {
		return apperr.NotFound("Zine")
	}
	delete(repository.zines, id)
	return nil
}

func (repository *fakeZineRepository) OwnerUserID(_ context.Context, zineID string) (string, error) {
	owner, ok := repository.owners[zineID]
	if !ok {
		return "", apperr.NotFound("Zine")
	}
	return owner, nil
}

// # Fixtures

const ownerID = "user-owner"

func newZineService(t *testing.T) (*zine.Service, *fakeZineRepository) {
	t.Helper()

	publishers := &fakePublisherRepository{byUserID: map[string]*publisher.Publisher{
		ownerID: {ID: "publisher-1", UserID: ownerID, Handle: "inkwell"},
	}}
	zines := &fakeZineRepository{
		zines:  make(map[string]*zine.Zine),
		owners: make(map[string]string),
	}

	return zine.NewService(zines, publisher.NewService(publishers)), zines
}

func createZine(t *testing.T, service *zine.Service, repository *fakeZineRepository, input zine.CreateInput) *zine.Zine {
	t.Helper()

	record, err := service.Create(context.Background(), ownerID, input)
	require.NoError(t, err)
	repository.owners[record.ID] = ownerID
	return record
}

// # Tests

/*
TestService_Create covers slug derivation, the default visibility, and
the password requirement for protected zines.
*/
func TestService_Create(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		service, repository := newZineService(t)

		record := createZine(t, service, repository, zine.CreateInput{Title: "Paper Moons & Telescopes"})

		assert.Equal(t, "paper-moons-telescopes", record.Slug)
		assert.Equal(t, zine.VisibilityPublic, record.Visibility)
		assert.Nil(t, record.PasswordHash)
		assert.Equal(t, "publisher-1", record.PublisherID)
	})

	t.Run("no_publisher_profile", func(t *testing.T) {
		service, _ := newZineService(t)

		_, err := service.Create(context.Background(), "user-without-profile", zine.CreateInput{Title: "Nope"})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("unsluggable_title", func(t *testing.T) {
		service, _ := newZineService(t)

		_, err := service.Create(context.Background(), ownerID, zine.CreateInput{Title: "???"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_slug_conflict", func(t *testing.T) {
		service, repository := newZineService(t)
		createZine(t, service, repository, zine.CreateInput{Title: "Duplicate"})

		_, err := service.Create(context.Background(), ownerID, zine.CreateInput{Title: "Duplicate"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("password_zine_stores_hash", func(t *testing.T) {
		service, repository := newZineService(t)

		record := createZine(t, service, repository, zine.CreateInput{
			Title:      "Locked",
			Visibility: zine.VisibilityPassword,
			Password:   "hunter42",
		})

		require.NotNil(t, record.PasswordHash)
		assert.NotEqual(t, "hunter42", *record.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("hunter42", *record.PasswordHash))
	})

	t.Run("password_zine_without_password", func(t *testing.T) {
		service, _ := newZineService(t)

		_, err := service.Create(context.Background(), ownerID, zine.CreateInput{
			Title:      "Locked",
			Visibility: zine.VisibilityPassword,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_Update covers visibility switching and the slug's
immutability.
*/
func TestService_Update(t *testing.T) {
	t.Run("slug_never_changes", func(t *testing.T) {
		service, repository := newZineService(t)
		record := createZine(t, service, repository, zine.CreateInput{Title: "Original Title"})

		newTitle := "Completely Different"
		updated, err := service.Update(context.Background(), ownerID, record.ID, zine.UpdateInput{Title: &newTitle})
		require.NoError(t, err)

		assert.Equal(t, "Completely Different", updated.Title)
		assert.Equal(t, "original-title", updated.Slug)
	})

	t.Run("switch_to_password_requires_one", func(t *testing.T) {
		service, repository := newZineService(t)
		record := createZine(t, service, repository, zine.CreateInput{Title: "Open"})

		visibility := zine.VisibilityPassword
		_, err := service.Update(context.Background(), ownerID, record.ID, zine.UpdateInput{Visibility: &visibility})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		password := "hunter42"
		updated, err := service.Update(context.Background(), ownerID, record.ID, zine.UpdateInput{
			Visibility: &visibility,
			Password:   &password,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.PasswordHash)
	})

	t.Run("switch_away_clears_hash", func(t *testing.T) {
		service, repository := newZineService(t)
		record := createZine(t, service, repository, zine.CreateInput{
			Title:      "Locked",
			Visibility: zine.VisibilityPassword,
			Password:   "hunter42",
		})

		visibility := zine.VisibilityUnlisted
		updated, err := service.Update(context.Background(), ownerID, record.ID, zine.UpdateInput{Visibility: &visibility})
		require.NoError(t, err)

		assert.Equal(t, zine.VisibilityUnlisted, updated.Visibility)
		assert.Nil(t, updated.PasswordHash)
	})

	t.Run("foreign_zine_forbidden", func(t *testing.T) {
		service, repository := newZineService(t)
		record := createZine(t, service, repository, zine.CreateInput{Title: "Mine"})
		repository.owners[record.ID] = "someone-else"

		title := "Theirs"
		_, err := service.Update(context.Background(), ownerID, record.ID, zine.UpdateInput{Title: &title})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestService_Delete verifies ownership gating and that the zine is gone
afterwards.
*/
func TestService_Delete(t *testing.T) {
	service, repository := newZineService(t)
	record := createZine(t, service, repository, zine.CreateInput{Title: "Ephemeral"})

	t.Run("foreign_user_forbidden", func(t *testing.T) {
		err := service.Delete(context.Background(), "user-stranger", record.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Contains(t, repository.zines, record.ID)
	})

	t.Run("owner_deletes", func(t *testing.T) {
		require.NoError(t, service.Delete(context.Background(), ownerID, record.ID))
		assert.NotContains(t, repository.zines, record.ID)
	})
}
