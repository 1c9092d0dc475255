// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubPageTable represents the 'pub.page' table
type PubPageTable struct {
	Table           string
	ID              string
	IssueID         string
	PageNumber      string
	BackgroundColor string
	Metadata        string
}

// PubPage is the schema definition for pub.page
//
// PageNumber is 1-based and dense per issue; density is guaranteed by the
// full-replacement save path, not by a database constraint on gaps.
var PubPage = PubPageTable{
	Table:           "pub.page",
	ID:              "id",
	IssueID:         "issueid",
	PageNumber:      "pagenumber",
	BackgroundColor: "backgroundcolor",
	Metadata:        "metadata",
}

// Columns returns all standard column names
func (t PubPageTable) Columns() []string {
	return []string{t.ID, t.IssueID, t.PageNumber, t.BackgroundColor, t.Metadata}
}
