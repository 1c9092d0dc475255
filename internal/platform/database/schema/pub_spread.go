// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubSpreadTable represents the 'pub.spread' table
type PubSpreadTable struct {
	Table        string
	ID           string
	IssueID      string
	SpreadNumber string
	LeftPageID   string
	RightPageID  string
}

// PubSpread is the schema definition for pub.spread
//
// Spreads are fully derived: deleted and rebuilt wholesale whenever pages
// change. LeftPageID/RightPageID are weak references — they never cascade
// to pages.
var PubSpread = PubSpreadTable{
	Table:        "pub.spread",
	ID:           "id",
	IssueID:      "issueid",
	SpreadNumber: "spreadnumber",
	LeftPageID:   "leftpageid",
	RightPageID:  "rightpageid",
}

// Columns returns all standard column names
func (t PubSpreadTable) Columns() []string {
	return []string{t.ID, t.IssueID, t.SpreadNumber, t.LeftPageID, t.RightPageID}
}
