// Copyright (c) 2026 Zinery. All rights reserved.

package schema

// PubBlockTable represents the 'pub.block' table
type PubBlockTable struct {
	Table     string
	ID        string
	PageID    string
	BlockType string
	XPercent  string
	YPercent  string
	WPercent  string
	HPercent  string
	Rotation  string
	ZIndex    string
	Data      string
}

// PubBlock is the schema definition for pub.block
//
// Geometry is stored as percentages of the 900×1200 canvas (0–100).
// Data holds the full original editor element payload for round-trip
// fidelity beyond the normalized geometry columns.
var PubBlock = PubBlockTable{
	Table:     "pub.block",
	ID:        "id",
	PageID:    "pageid",
	BlockType: "blocktype",
	XPercent:  "xpercent",
	YPercent:  "ypercent",
	WPercent:  "wpercent",
	HPercent:  "hpercent",
	Rotation:  "rotation",
	ZIndex:    "zindex",
	Data:      "data",
}

// Columns returns all standard column names
func (t PubBlockTable) Columns() []string {
	return []string{
		t.ID, t.PageID, t.BlockType, t.XPercent, t.YPercent, t.WPercent,
		t.HPercent, t.Rotation, t.ZIndex, t.Data,
	}
}
