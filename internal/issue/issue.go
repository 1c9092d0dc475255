// Copyright (c) 2026 Zinery. All rights reserved.

/*
Package issue implements the document lifecycle at the heart of the
platform: saving canvas documents, deriving reader spreads from the page
sequence, and moving issues between draft and published states.

# Model

An issue owns an ordered sequence of pages (dense 1..N page numbers,
wholly replaced on every save) and a derived sequence of spreads that is
deleted and rebuilt whenever pages change. The counters cached on the
issue (PageCount, SpreadCount) and on the parent zine (IssueCount) are
recomputed inside the same transaction as the mutation that invalidates
them, never adjusted by delta.
*/
package issue

import (
	"encoding/json"
	"time"
)

// # Canvas Geometry

// Logical canvas dimensions of a page in the builder, in pixels. Block
// geometry is stored as percentages of these fixed dimensions.
const (
	CanvasWidth  = 900.0
	CanvasHeight = 1200.0
)

// # Domain Entities

// Issue is one draft or published edition within a zine.
type Issue struct {
	ID          string `json:"id"`
	ZineID      string `json:"zine_id"`
	IssueNumber int    `json:"issue_number"`
	Title       string `json:"title"`

	// PageCount and SpreadCount cache the owned collections; both are
	// refreshed atomically with any page mutation.
	PageCount   int `json:"page_count"`
	SpreadCount int `json:"spread_count"`

	// PublishedAt null means draft.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Published reports whether the issue is currently live.
func (issue *Issue) Published() bool {
	return issue.PublishedAt != nil
}

// Page is a single canvas page owned by an issue. PageNumber is 1-based
// and dense within the issue.
type Page struct {
	ID              string          `json:"id"`
	IssueID         string          `json:"issue_id"`
	PageNumber      int             `json:"page_number"`
	BackgroundColor string          `json:"background_color"`
	Metadata        json.RawMessage `json:"metadata"`
	Blocks          []*Block        `json:"blocks"`
}

// Block is a positioned visual element on a page. Geometry is expressed
// as percentages (0–100) of the canvas dimensions; Data preserves the
// full original editor payload beyond the normalized columns.
type Block struct {
	ID        string          `json:"id"`
	PageID    string          `json:"page_id"`
	BlockType string          `json:"block_type"`
	XPercent  float64         `json:"x_percent"`
	YPercent  float64         `json:"y_percent"`
	WPercent  float64         `json:"w_percent"`
	HPercent  float64         `json:"h_percent"`
	Rotation  float64         `json:"rotation"`
	ZIndex    int             `json:"z_index"`
	Data      json.RawMessage `json:"data"`
}

// Spread is a derived reader-facing pairing of at most two pages. The
// page references are weak: a spread never owns a page.
type Spread struct {
	ID           string  `json:"id"`
	IssueID      string  `json:"issue_id"`
	SpreadNumber int     `json:"spread_number"`
	LeftPageID   *string `json:"left_page_id"`
	RightPageID  *string `json:"right_page_id"`
}

// Summary is the compact issue projection returned by mutations.
type Summary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IssueNumber int        `json:"issue_number"`
	PageCount   int        `json:"page_count"`
	SpreadCount int        `json:"spread_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Summarize projects the issue into its mutation-response form.
func (issue *Issue) Summarize() Summary {
	return Summary{
		ID:          issue.ID,
		Title:       issue.Title,
		IssueNumber: issue.IssueNumber,
		PageCount:   issue.PageCount,
		SpreadCount: issue.SpreadCount,
		PublishedAt: issue.PublishedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}

// Ownership is the projection used to authorize issue mutations and to
// compose public URLs without a second round of lookups.
type Ownership struct {
	IssueID         string
	ZineID          string
	ZineSlug        string
	PublisherID     string
	PublisherHandle string
	OwnerUserID     string
	IssueNumber     int
	PublishedAt     *time.Time
}

// # Field Identifiers

const (
	FieldZineID   = "zine_id"
	FieldTitle    = "title"
	FieldDocument = "document"
)
