// Copyright (c) 2026 Zinery. All rights reserved.

/*
Package publisher manages the publisher profiles that own zines.

A publisher is the public identity of a user on the platform: every zine
belongs to exactly one publisher, and the publisher's handle is the first
segment of every public issue URL.
*/
package publisher

import "time"

// # Domain Entities

// Publisher is the public-facing imprint owned by a single user account.
type Publisher struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldHandle      = "handle"
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
)

// # Constraints

const (
	HandleMinLength      = 3
	HandleMaxLength      = 40
	DisplayNameMaxLength = 80
	BioMaxLength         = 500
)
