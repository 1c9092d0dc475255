// Copyright (c) 2026 Zinery. All rights reserved.

/*
Package reader is the public reading surface: anonymous resolution of
published issues by their public URL path and the unlock flow for
password-protected zines.

Only published issues are ever visible here. UNLISTED zines resolve by
direct link but are excluded from publisher listings; PASSWORD zines
require a short-lived access grant obtained by submitting the zine's
reader password.
*/
package reader

import (
	"encoding/json"
	"time"
)

// # Public View Models

// PublisherView is the public projection of a publisher.
type PublisherView struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
}

// ZineView is the public projection of a zine.
type ZineView struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility"`
	IssueCount  int    `json:"issue_count"`
}

// IssueView is the public projection of a published issue, with its
// spread layout and the page content each spread references.
type IssueView struct {
	Title       string       `json:"title"`
	IssueNumber int          `json:"issue_number"`
	PageCount   int          `json:"page_count"`
	SpreadCount int          `json:"spread_count"`
	PublishedAt time.Time    `json:"published_at"`
	Spreads     []SpreadView `json:"spreads"`
}

// SpreadView pairs at most two resolved pages. A nil side means the
// spread shows a single page (cover, or an odd tail).
type SpreadView struct {
	SpreadNumber int       `json:"spread_number"`
	Left         *PageView `json:"left"`
	Right        *PageView `json:"right"`
}

// PageView is the rendered-facing page projection.
type PageView struct {
	PageNumber      int         `json:"page_number"`
	BackgroundColor string      `json:"background_color"`
	Blocks          []BlockView `json:"blocks"`
}

// BlockView is the rendered-facing block projection: percentage geometry
// as stored, plus the preserved payload.
type BlockView struct {
	BlockType string          `json:"block_type"`
	XPercent  float64         `json:"x_percent"`
	YPercent  float64         `json:"y_percent"`
	WPercent  float64         `json:"w_percent"`
	HPercent  float64         `json:"h_percent"`
	Rotation  float64         `json:"rotation"`
	ZIndex    int             `json:"z_index"`
	Data      json.RawMessage `json:"data"`
}

// IssueListing is one row on a publisher's public zine page.
type IssueListing struct {
	IssueNumber int       `json:"issue_number"`
	Title       string    `json:"title"`
	PageCount   int       `json:"page_count"`
	PublishedAt time.Time `json:"published_at"`
}

// # Unlock Flow

// GrantTTL is how long an unlock grant for a password-protected zine
// stays valid before the reader must re-enter the password.
const GrantTTL = 12 * time.Hour

// GrantTokenLength is the byte length of the opaque grant token.
const GrantTokenLength = 32

// # Field Identifiers

const (
	FieldPassword = "password"
	FieldGrant    = "grant"
)
