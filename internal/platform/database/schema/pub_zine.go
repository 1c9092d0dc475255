// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubZineTable represents the 'pub.zine' table
type PubZineTable struct {
	Table        string
	ID           string
	PublisherID  string
	Slug         string
	Title        string
	Description  string
	Visibility   string
	PasswordHash string
	IssueCount   string
	CreatedAt    string
	UpdatedAt    string
}

// PubZine is the schema definition for pub.zine
//
// IssueCount is a denormalized cache of the zine's published issues,
// recomputed transactionally on every publish/unpublish.
var PubZine = PubZineTable{
	Table:        "pub.zine",
	ID:           "id",
	PublisherID:  "publisherid",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	Visibility:   "visibility",
	PasswordHash: "passwordhash",
	IssueCount:   "issuecount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t PubZineTable) Columns() []string {
	return []string{
		t.ID, t.PublisherID, t.Slug, t.Title, t.Description, t.Visibility,
		t.PasswordHash, t.IssueCount, t.CreatedAt, t.UpdatedAt,
	}
}
