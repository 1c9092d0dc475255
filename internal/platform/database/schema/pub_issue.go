// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubIssueTable represents the 'pub.issue' table
type PubIssueTable struct {
	Table       string
	ID          string
	ZineID      string
	IssueNumber string
	Title       string
	PageCount   string
	SpreadCount string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// PubIssue is the schema definition for pub.issue
//
// PageCount and SpreadCount are denormalized caches refreshed atomically
// with every page mutation. PublishedAt null means draft.
var PubIssue = PubIssueTable{
	Table:       "pub.issue",
	ID:          "id",
	ZineID:      "zineid",
	IssueNumber: "issuenumber",
	Title:       "title",
	PageCount:   "pagecount",
	SpreadCount: "spreadcount",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t PubIssueTable) Columns() []string {
	return []string{
		t.ID, t.ZineID, t.IssueNumber, t.Title, t.PageCount, t.SpreadCount,
		t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
