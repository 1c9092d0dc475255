// Copyright (c) 2026 Zinery. All rights reserved.

package issue_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinery/zinery/internal/issue"
	"github.com/zinery/zinery/internal/platform/apperr"
)

/*
TestFromDocument_GeometryScaling verifies pixel geometry is rescaled to
canvas percentages on the 900x1200 canvas.
*/
func TestFromDocument_GeometryScaling(t *testing.T) {
	document := &issue.DocumentState{
		Title: "Geometry",
		Pages: []*issue.DocumentPage{
			{
				Elements: []*issue.DocumentElement{
					{Type: "text", X: 450, Y: 600, Width: 90, Height: 120, Rotation: 15},
				},
			},
		},
	}

	pages, err := issue.FromDocument("issue-1", document)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Blocks, 1)

	block := pages[0].Blocks[0]
	assert.Equal(t, "issue-1", pages[0].IssueID)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.NotEmpty(t, pages[0].ID)
	assert.Equal(t, pages[0].ID, block.PageID)

	assert.InDelta(t, 50.0, block.XPercent, 1e-9)
	assert.InDelta(t, 50.0, block.YPercent, 1e-9)
	assert.InDelta(t, 10.0, block.WPercent, 1e-9)
	assert.InDelta(t, 10.0, block.HPercent, 1e-9)
	assert.Equal(t, 15.0, block.Rotation)
}

/*
TestDocument_GeometryRoundTrip pushes an editor document through
FromDocument and back through ToDocument and expects pixel geometry,
paper, and page metadata to survive unchanged.
*/
func TestDocument_GeometryRoundTrip(t *testing.T) {
	zIndex := 7
	document := &issue.DocumentState{
		Title: "Round Trip",
		Pages: []*issue.DocumentPage{
			{
				Name:        "Cover",
				Section:     "front",
				Paper:       "kraft",
				DeckledEdge: true,
				Elements: []*issue.DocumentElement{
					{Type: "image", X: 90, Y: 240, Width: 225, Height: 300, Rotation: -3, ZIndex: &zIndex},
					{Type: "text", X: 0, Y: 0, Width: 900, Height: 1200},
				},
			},
			{
				Paper:    "charcoal",
				Elements: []*issue.DocumentElement{},
			},
		},
	}

	pages, err := issue.FromDocument("issue-1", document)
	require.NoError(t, err)

	restored := issue.ToDocument("Round Trip", pages)
	require.Len(t, restored.Pages, 2)

	assert.Equal(t, "Round Trip", restored.Title)

	first := restored.Pages[0]
	assert.Equal(t, "Cover", first.Name)
	assert.Equal(t, "front", first.Section)
	assert.Equal(t, "kraft", first.Paper)
	assert.True(t, first.DeckledEdge)
	require.Len(t, first.Elements, 2)

	image := first.Elements[0]
	assert.Equal(t, "image", image.Type)
	assert.InDelta(t, 90.0, image.X, 1e-9)
	assert.InDelta(t, 240.0, image.Y, 1e-9)
	assert.InDelta(t, 225.0, image.Width, 1e-9)
	assert.InDelta(t, 300.0, image.Height, 1e-9)
	assert.Equal(t, -3.0, image.Rotation)
	require.NotNil(t, image.ZIndex)
	assert.Equal(t, 7, *image.ZIndex)

	assert.Equal(t, "charcoal", restored.Pages[1].Paper)
	assert.Empty(t, restored.Pages[1].Elements)
}

/*
TestPaperTable covers both directions of the paper stock table and the
fallback for identifiers and colors outside it.
*/
func TestPaperTable(t *testing.T) {
	tests := []struct {
		paper string
		color string
	}{
		{"white", "#FFFFFF"},
		{"cream", "#FDF6E3"},
		{"kraft", "#D2B48C"},
		{"newsprint", "#F4F1EA"},
		{"charcoal", "#36454F"},
		{"rose", "#FFE4E1"},
	}

	for _, tt := range tests {
		t.Run(tt.paper, func(t *testing.T) {
			assert.Equal(t, tt.color, issue.PaperToColor(tt.paper))
			assert.Equal(t, tt.paper, issue.ColorToPaper(tt.color))
		})
	}

	t.Run("case_insensitive", func(t *testing.T) {
		assert.Equal(t, "#D2B48C", issue.PaperToColor("KRAFT"))
		assert.Equal(t, "kraft", issue.ColorToPaper("#d2b48c"))
	})

	t.Run("unknown_falls_back", func(t *testing.T) {
		assert.Equal(t, "#FFFFFF", issue.PaperToColor("vellum"))
		assert.Equal(t, "#FFFFFF", issue.PaperToColor(""))
		assert.Equal(t, issue.DefaultPaper, issue.ColorToPaper("#123456"))
		assert.Equal(t, issue.DefaultPaper, issue.ColorToPaper(""))
	})
}

/*
TestFromDocument_StackingOrder verifies explicit z_index wins over array
position and that omitted stacking falls back to element order.
*/
func TestFromDocument_StackingOrder(t *testing.T) {
	explicit := 42
	document := &issue.DocumentState{
		Pages: []*issue.DocumentPage{
			{
				Elements: []*issue.DocumentElement{
					{Type: "text", Width: 10, Height: 10},
					{Type: "text", Width: 10, Height: 10, ZIndex: &explicit},
					{Type: "text", Width: 10, Height: 10},
				},
			},
		},
	}

	pages, err := issue.FromDocument("issue-1", document)
	require.NoError(t, err)
	require.Len(t, pages[0].Blocks, 3)

	assert.Equal(t, 0, pages[0].Blocks[0].ZIndex)
	assert.Equal(t, 42, pages[0].Blocks[1].ZIndex)
	assert.Equal(t, 2, pages[0].Blocks[2].ZIndex)
}

/*
TestDocument_OpaquePayloadPreserved verifies editor fields the storage
model does not normalize survive a save/load round trip, with the
normalized geometry layered back on top.
*/
func TestDocument_OpaquePayloadPreserved(t *testing.T) {
	raw := []byte(`{"type":"text","x":90,"y":120,"width":450,"height":600,` +
		`"content":"Hello zine","font":"Garamond","letter_spacing":0.4}`)

	var element issue.DocumentElement
	require.NoError(t, json.Unmarshal(raw, &element))
	assert.Equal(t, "text", element.Type)
	assert.Equal(t, json.RawMessage(raw), element.Raw)

	document := &issue.DocumentState{
		Pages: []*issue.DocumentPage{{Elements: []*issue.DocumentElement{&element}}},
	}

	pages, err := issue.FromDocument("issue-1", document)
	require.NoError(t, err)

	restored := issue.ToDocument("", pages)
	require.Len(t, restored.Pages[0].Elements, 1)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(restored.Pages[0].Elements[0].Raw, &payload))

	assert.Equal(t, "Hello zine", payload["content"])
	assert.Equal(t, "Garamond", payload["font"])
	assert.Equal(t, 0.4, payload["letter_spacing"])

	assert.Equal(t, "text", payload["type"])
	assert.InDelta(t, 90.0, payload["x"].(float64), 1e-9)
	assert.InDelta(t, 120.0, payload["y"].(float64), 1e-9)
	assert.InDelta(t, 450.0, payload["width"].(float64), 1e-9)
	assert.InDelta(t, 600.0, payload["height"].(float64), 1e-9)
}

/*
TestFromDocument_Validation covers the structural rejections: nil
document, nil page, untyped elements, and negative dimensions.
*/
func TestFromDocument_Validation(t *testing.T) {
	tests := []struct {
		name     string
		document *issue.DocumentState
	}{
		{
			name:     "nil_document",
			document: nil,
		},
		{
			name:     "nil_page",
			document: &issue.DocumentState{Pages: []*issue.DocumentPage{nil}},
		},
		{
			name: "element_without_type",
			document: &issue.DocumentState{
				Pages: []*issue.DocumentPage{
					{Elements: []*issue.DocumentElement{{Width: 10, Height: 10}}},
				},
			},
		},
		{
			name: "negative_dimensions",
			document: &issue.DocumentState{
				Pages: []*issue.DocumentPage{
					{Elements: []*issue.DocumentElement{{Type: "text", Width: -1, Height: 10}}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issue.FromDocument("issue-1", tt.document)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestToDocument_MalformedStoredData verifies that blocks with undecodable
opaque data still come back with their geometry intact.
*/
func TestToDocument_MalformedStoredData(t *testing.T) {
	pages := []*issue.Page{
		{
			ID:              "page-1",
			IssueID:         "issue-1",
			PageNumber:      1,
			BackgroundColor: "#FFFFFF",
			Metadata:        json.RawMessage(`not json`),
			Blocks: []*issue.Block{
				{
					ID:        "block-1",
					PageID:    "page-1",
					BlockType: "shape",
					XPercent:  25,
					YPercent:  25,
					WPercent:  50,
					HPercent:  50,
					ZIndex:    3,
					Data:      json.RawMessage(`{{broken`),
				},
			},
		},
	}

	restored := issue.ToDocument("Salvage", pages)
	require.Len(t, restored.Pages, 1)
	require.Len(t, restored.Pages[0].Elements, 1)

	element := restored.Pages[0].Elements[0]
	assert.Equal(t, "shape", element.Type)
	assert.InDelta(t, 225.0, element.X, 1e-9)
	assert.InDelta(t, 300.0, element.Y, 1e-9)
	assert.InDelta(t, 450.0, element.Width, 1e-9)
	assert.InDelta(t, 600.0, element.Height, 1e-9)
	require.NotNil(t, element.ZIndex)
	assert.Equal(t, 3, *element.ZIndex)
}
