// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/pkg/uuid"
)

// # Builder Document Model
//
// The builder exchanges a pixel-space document with the client; storage
// keeps percentage-space blocks. These types and the two mapping
// functions below are the bridge between the two representations.

// DocumentState is the editor-facing document exchanged with the client.
type DocumentState struct {
	Title string          `json:"title"`
	Pages []*DocumentPage `json:"pages"`
}

// DocumentPage is one canvas page in editor form. Paper identifies the
// named paper stock; it round-trips through the stored background color.
type DocumentPage struct {
	Name        string             `json:"name,omitempty"`
	Section     string             `json:"section,omitempty"`
	Paper       string             `json:"paper,omitempty"`
	DeckledEdge bool               `json:"deckled_edge,omitempty"`
	Elements    []*DocumentElement `json:"elements"`
}

// DocumentElement is one positioned element in editor pixel space.
//
// ZIndex is optional: when the editor omits it, stacking order falls
// back to array position. Raw preserves the element's complete original
// payload so fields the storage model does not normalize survive a
// save/load round trip untouched.
type DocumentElement struct {
	Type     string   `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation float64  `json:"rotation,omitempty"`
	ZIndex   *int     `json:"z_index,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON captures the raw payload alongside the normalized fields.
func (element *DocumentElement) UnmarshalJSON(data []byte) error {
	type alias DocumentElement
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*element = DocumentElement(decoded)
	element.Raw = json.RawMessage(data)
	return nil
}

// MarshalJSON re-emits the preserved payload when one exists, so opaque
// editor fields survive unmodified.
func (element *DocumentElement) MarshalJSON() ([]byte, error) {
	if len(element.Raw) > 0 {
		return element.Raw, nil
	}
	type alias DocumentElement
	return json.Marshal((*alias)(element))
}

// pageMetadata is the free-form page descriptor persisted as jsonb.
type pageMetadata struct {
	Name        string `json:"name,omitempty"`
	Section     string `json:"section,omitempty"`
	DeckledEdge bool   `json:"deckled_edge,omitempty"`
}

// # Paper Stock Table

// DefaultPaper is the paper identifier unknown stored colors fall back to.
const DefaultPaper = "white"

// paperColors maps the closed set of named paper stocks to their fixed
// background hex values.
var paperColors = map[string]string{
	"white":     "#FFFFFF",
	"cream":     "#FDF6E3",
	"kraft":     "#D2B48C",
	"newsprint": "#F4F1EA",
	"charcoal":  "#36454F",
	"rose":      "#FFE4E1",
}

// PaperToColor resolves a paper identifier to its hex color. Unknown or
// empty identifiers resolve to the default paper's color.
func PaperToColor(paper string) string {
	if color, ok := paperColors[strings.ToLower(paper)]; ok {
		return color
	}
	return paperColors[DefaultPaper]
}

// ColorToPaper resolves a stored hex color back to its paper identifier,
// falling back to [DefaultPaper] for colors outside the table.
func ColorToPaper(color string) string {
	normalized := strings.ToUpper(color)
	for paper, hex := range paperColors {
		if hex == normalized {
			return paper
		}
	}
	return DefaultPaper
}

// # Mapping

/*
FromDocument converts an editor document into storage records.

Description: Each page in submitted order becomes a Page with
pageNumber = index + 1; each element becomes a Block with its pixel
geometry rescaled to canvas percentages. An element's explicit stacking
field wins over array position when present.

Returns:
  - []*Page: storage pages with nested blocks, IDs freshly assigned
  - error: ValidationError when the document is structurally invalid
*/
func FromDocument(issueID string, document *DocumentState) ([]*Page, error) {
	if err := validateDocument(document); err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(document.Pages))
	for pageIndex, documentPage := range document.Pages {
		metadata, err := json.Marshal(pageMetadata{
			Name:        documentPage.Name,
			Section:     documentPage.Section,
			DeckledEdge: documentPage.DeckledEdge,
		})
		if err != nil {
			return nil, fmt.Errorf("document_metadata_encode_failed: %w", err)
		}

		page := &Page{
			ID:              uuid.New(),
			IssueID:         issueID,
			PageNumber:      pageIndex + 1,
			BackgroundColor: PaperToColor(documentPage.Paper),
			Metadata:        metadata,
			Blocks:          make([]*Block, 0, len(documentPage.Elements)),
		}

		for elementIndex, element := range documentPage.Elements {
			zIndex := elementIndex
			if element.ZIndex != nil {
				zIndex = *element.ZIndex
			}

			data := element.Raw
			if len(data) == 0 {
				data = json.RawMessage("{}")
			}

			page.Blocks = append(page.Blocks, &Block{
				ID:        uuid.New(),
				PageID:    page.ID,
				BlockType: element.Type,
				XPercent:  element.X / CanvasWidth * 100,
				YPercent:  element.Y / CanvasHeight * 100,
				WPercent:  element.Width / CanvasWidth * 100,
				HPercent:  element.Height / CanvasHeight * 100,
				Rotation:  element.Rotation,
				ZIndex:    zIndex,
				Data:      data,
			})
		}

		pages = append(pages, page)
	}

	return pages, nil
}

/*
ToDocument converts stored pages back into the editor document form.

Geometry is rescaled from canvas percentages to pixels and each block's
preserved payload is re-emitted verbatim, with the normalized geometry
and stacking fields layered back on top of it.
*/
func ToDocument(title string, pages []*Page) *DocumentState {
	document := &DocumentState{
		Title: title,
		Pages: make([]*DocumentPage, 0, len(pages)),
	}

	for _, page := range pages {
		var metadata pageMetadata
		// Malformed metadata degrades to empty descriptors, not an error.
		_ = json.Unmarshal(page.Metadata, &metadata)

		documentPage := &DocumentPage{
			Name:        metadata.Name,
			Section:     metadata.Section,
			Paper:       ColorToPaper(page.BackgroundColor),
			DeckledEdge: metadata.DeckledEdge,
			Elements:    make([]*DocumentElement, 0, len(page.Blocks)),
		}

		for _, block := range page.Blocks {
			zIndex := block.ZIndex
			element := &DocumentElement{
				Type:     block.BlockType,
				X:        block.XPercent / 100 * CanvasWidth,
				Y:        block.YPercent / 100 * CanvasHeight,
				Width:    block.WPercent / 100 * CanvasWidth,
				Height:   block.HPercent / 100 * CanvasHeight,
				Rotation: block.Rotation,
				ZIndex:   &zIndex,
				Raw:      restoreElementPayload(block, zIndex),
			}
			documentPage.Elements = append(documentPage.Elements, element)
		}

		document.Pages = append(document.Pages, documentPage)
	}

	return document
}

// restoreElementPayload merges the normalized geometry back into the
// preserved opaque payload so clients see one consistent element object.
func restoreElementPayload(block *Block, zIndex int) json.RawMessage {
	payload := map[string]any{}
	if len(block.Data) > 0 {
		// Opaque data is client-supplied; a decode failure here only
		// loses the unnormalized extras, never the geometry.
		_ = json.Unmarshal(block.Data, &payload)
	}

	payload["type"] = block.BlockType
	payload["x"] = block.XPercent / 100 * CanvasWidth
	payload["y"] = block.YPercent / 100 * CanvasHeight
	payload["width"] = block.WPercent / 100 * CanvasWidth
	payload["height"] = block.HPercent / 100 * CanvasHeight
	payload["rotation"] = block.Rotation
	payload["z_index"] = zIndex

	merged, err := json.Marshal(payload)
	if err != nil {
		return block.Data
	}
	return merged
}

// validateDocument rejects structurally invalid builder documents before
// any mutation begins.
func validateDocument(document *DocumentState) error {
	if document == nil {
		return apperr.ValidationError("Document state is required")
	}

	for pageIndex, page := range document.Pages {
		if page == nil {
			return apperr.ValidationError(fmt.Sprintf("Page %d is empty", pageIndex+1))
		}
		for elementIndex, element := range page.Elements {
			if element == nil {
				return apperr.ValidationError(fmt.Sprintf(
					"Page %d element %d is empty", pageIndex+1, elementIndex+1))
			}
			if element.Type == "" {
				return apperr.ValidationError(fmt.Sprintf(
					"Page %d element %d has no type", pageIndex+1, elementIndex+1))
			}
			if element.Width < 0 || element.Height < 0 {
				return apperr.ValidationError(fmt.Sprintf(
					"Page %d element %d has negative dimensions", pageIndex+1, elementIndex+1))
			}
		}
	}

	return nil
}
