// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubPublisherTable represents the 'pub.publisher' table
type PubPublisherTable struct {
	Table       string
	ID          string
	UserID      string
	Handle      string
	DisplayName string
	Bio         string
	CreatedAt   string
	UpdatedAt   string
}

// PubPublisher is the schema definition for pub.publisher
var PubPublisher = PubPublisherTable{
	Table:       "pub.publisher",
	ID:          "id",
	UserID:      "userid",
	Handle:      "handle",
	DisplayName: "displayname",
	Bio:         "bio",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t PubPublisherTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Handle, t.DisplayName, t.Bio, t.CreatedAt, t.UpdatedAt}
}
