// Copyright (c) 2026 Zinery. All rights reserved.

package reader

import (
	"context"
	"log/slog"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/sec"
	"github.com/zinery/zinery/internal/zine"
)

// Service implements the anonymous reading use cases, including the
// unlock flow for password-protected zines.
type Service struct {
	repository Repository
	grants     GrantRepository
	logger     *slog.Logger
}

// NewService constructs a new reader [Service].
func NewService(repository Repository, grants GrantRepository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		grants:     grants,
		logger:     logger,
	}
}

// PublisherPage is a publisher's public landing page.
type PublisherPage struct {
	Publisher *PublisherView `json:"publisher"`
	Zines     []*ZineView    `json:"zines"`
}

// GetPublisher returns a publisher's public page: profile plus listed
// zines (UNLISTED ones stay off the page by definition).
func (service *Service) GetPublisher(context context.Context, handle string) (*PublisherPage, error) {
	publisher, err := service.repository.FindPublisher(context, handle)
	if err != nil {
		return nil, err
	}

	zines, err := service.repository.ListListedZines(context, handle)
	if err != nil {
		return nil, err
	}

	return &PublisherPage{Publisher: publisher, Zines: zines}, nil
}

// ZinePage is a zine's public landing page with its published issues.
type ZinePage struct {
	Zine   *ZineView       `json:"zine"`
	Issues []*IssueListing `json:"issues"`
}

/*
GetZine resolves a zine's public page.

Password-protected zines require a valid unlock grant; without one the
caller gets Forbidden and must go through [Service.Unlock] first.
*/
func (service *Service) GetZine(context context.Context, handle, slug, grantToken string) (*ZinePage, error) {
	record, err := service.repository.FindZine(context, handle, slug)
	if err != nil {
		return nil, err
	}

	if err := service.authorize(context, record, grantToken); err != nil {
		return nil, err
	}

	issues, err := service.repository.ListPublishedIssues(context, record.ID)
	if err != nil {
		return nil, err
	}

	return &ZinePage{
		Zine: &ZineView{
			Slug:        record.Slug,
			Title:       record.Title,
			Description: record.Description,
			Visibility:  record.Visibility,
			IssueCount:  record.IssueCount,
		},
		Issues: issues,
	}, nil
}

/*
GetIssue resolves a published issue at its public URL path
/{handle}/{slug}/{issueNumber}.

Draft issues are indistinguishable from missing ones. For
password-protected zines a valid grant is required.
*/
func (service *Service) GetIssue(context context.Context, handle, slug string, issueNumber int, grantToken string) (*IssueView, error) {
	record, err := service.repository.FindZine(context, handle, slug)
	if err != nil {
		return nil, err
	}

	if err := service.authorize(context, record, grantToken); err != nil {
		return nil, err
	}

	return service.repository.FindPublishedIssue(context, record.ID, issueNumber)
}

/*
Unlock exchanges a zine's reader password for a short-lived opaque grant
token stored in Redis.

The grant is scoped to the single zine it was issued for and expires
after [GrantTTL]; re-entering the password issues a fresh grant.
*/
func (service *Service) Unlock(context context.Context, handle, slug, password string) (string, error) {
	record, err := service.repository.FindZine(context, handle, slug)
	if err != nil {
		return "", err
	}

	if record.Visibility != string(zine.VisibilityPassword) || record.PasswordHash == nil {
		return "", apperr.Conflict("This zine is not password protected")
	}

	if !sec.CheckPasswordHash(password, *record.PasswordHash) {
		return "", apperr.Unauthorized("Incorrect password")
	}

	token, err := sec.GenerateSecureToken(GrantTokenLength)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := service.grants.Set(context, sec.HashToken(token), record.ID, GrantTTL); err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("reader_grant_issued", slog.String("zine_id", record.ID))

	return token, nil
}

// authorize enforces the zine's visibility policy for anonymous reads.
// PUBLIC and UNLISTED pass through; PASSWORD requires a grant that was
// issued for this exact zine.
func (service *Service) authorize(context context.Context, record *Zine, grantToken string) error {
	if record.Visibility != string(zine.VisibilityPassword) {
		return nil
	}

	if grantToken == "" {
		return apperr.Forbidden("This zine requires a password")
	}

	zineID, err := service.grants.Get(context, sec.HashToken(grantToken))
	if err != nil || zineID != record.ID {
		return apperr.Forbidden("This zine requires a password")
	}

	return nil
}
