// Copyright (c) 2026 Zinery. All rights reserved.

/*
Package zine manages zine-level metadata and the reader-visibility policy.

A zine is a titled series of issues belonging to one publisher. Its slug is
unique per publisher and, combined with the publisher handle, forms the
stable public URL prefix for all of its published issues.
*/
package zine

import "time"

// # Visibility Policy

// Visibility controls who can open a zine's published issues.
type Visibility string

const (
	// VisibilityPublic lists the zine on the publisher's public page.
	VisibilityPublic Visibility = "PUBLIC"

	// VisibilityUnlisted hides the zine from listings; direct links work.
	VisibilityUnlisted Visibility = "UNLISTED"

	// VisibilityPassword requires readers to unlock with a shared password.
	VisibilityPassword Visibility = "PASSWORD"
)

// Visibilities enumerates all accepted visibility values.
var Visibilities = []string{
	string(VisibilityPublic),
	string(VisibilityUnlisted),
	string(VisibilityPassword),
}

// Valid reports whether the value is a known visibility.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPassword:
		return true
	}
	return false
}

// # Domain Entities

// Zine is a series of issues under a single publisher.
type Zine struct {
	ID          string     `json:"id"`
	PublisherID string     `json:"publisher_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Visibility  Visibility `json:"visibility"`

	// PasswordHash is set only when Visibility is PASSWORD.
	PasswordHash *string `json:"-"`

	// IssueCount caches the number of currently published issues.
	IssueCount int `json:"issue_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVisibility  = "visibility"
	FieldPassword    = "password"
	FieldSlug        = "slug"
)

// # Constraints

const (
	TitleMaxLength       = 120
	DescriptionMaxLength = 2000
	PasswordMinLength    = 4
)
