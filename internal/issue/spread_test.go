// Copyright (c) 2026 Zinery. All rights reserved.

package issue_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinery/zinery/internal/issue"
)

/*
TestDeriveSpreads_Scenarios walks the canonical page-count scenarios:
empty issue, single cover, even and odd page counts.
*/
func TestDeriveSpreads_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		pageIDs []string
		want    []issue.Spread
	}{
		{
			name:    "zero_pages",
			pageIDs: []string{},
			want:    []issue.Spread{},
		},
		{
			name:    "single_page_cover_only",
			pageIDs: []string{"p0"},
			want: []issue.Spread{
				{SpreadNumber: 1, LeftPageID: nil, RightPageID: ptr("p0")},
			},
		},
		{
			name:    "two_pages",
			pageIDs: []string{"p0", "p1"},
			want: []issue.Spread{
				{SpreadNumber: 1, LeftPageID: nil, RightPageID: ptr("p0")},
				{SpreadNumber: 2, LeftPageID: ptr("p1"), RightPageID: nil},
			},
		},
		{
			name:    "four_pages_odd_tail",
			pageIDs: []string{"p0", "p1", "p2", "p3"},
			want: []issue.Spread{
				{SpreadNumber: 1, LeftPageID: nil, RightPageID: ptr("p0")},
				{SpreadNumber: 2, LeftPageID: ptr("p1"), RightPageID: ptr("p2")},
				{SpreadNumber: 3, LeftPageID: ptr("p3"), RightPageID: nil},
			},
		},
		{
			name:    "five_pages_full_tail",
			pageIDs: []string{"p0", "p1", "p2", "p3", "p4"},
			want: []issue.Spread{
				{SpreadNumber: 1, LeftPageID: nil, RightPageID: ptr("p0")},
				{SpreadNumber: 2, LeftPageID: ptr("p1"), RightPageID: ptr("p2")},
				{SpreadNumber: 3, LeftPageID: ptr("p3"), RightPageID: ptr("p4")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issue.DeriveSpreads(tt.pageIDs)
			require.Len(t, got, len(tt.want))

			for i, want := range tt.want {
				assert.Equal(t, want.SpreadNumber, got[i].SpreadNumber)
				assertPageRef(t, want.LeftPageID, got[i].LeftPageID, "left")
				assertPageRef(t, want.RightPageID, got[i].RightPageID, "right")
			}
		})
	}
}

/*
TestDeriveSpreads_CoverInvariant verifies that for any non-empty page
sequence the first spread is always a right-hand-only cover.
*/
func TestDeriveSpreads_CoverInvariant(t *testing.T) {
	for n := 1; n <= 20; n++ {
		pageIDs := makePageIDs(n)
		spreads := issue.DeriveSpreads(pageIDs)

		require.NotEmpty(t, spreads, "n=%d", n)
		assert.Nil(t, spreads[0].LeftPageID, "n=%d", n)
		require.NotNil(t, spreads[0].RightPageID, "n=%d", n)
		assert.Equal(t, pageIDs[0], *spreads[0].RightPageID, "n=%d", n)
	}
}

/*
TestSpreadCountFor checks the count formula 1 + ceil((n-1)/2) across a
range of page counts and that DeriveSpreads agrees with it.
*/
func TestSpreadCountFor(t *testing.T) {
	tests := []struct {
		pageCount int
		want      int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{6, 4},
		{7, 4},
		{100, 51},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n_%d", tt.pageCount), func(t *testing.T) {
			assert.Equal(t, tt.want, issue.SpreadCountFor(tt.pageCount))
			assert.Len(t, issue.DeriveSpreads(makePageIDs(tt.pageCount)), tt.want)
		})
	}
}

/*
TestDeriveSpreads_Deterministic verifies that deriving twice from the
same sequence yields an identical ordered layout.
*/
func TestDeriveSpreads_Deterministic(t *testing.T) {
	pageIDs := makePageIDs(9)

	first := issue.DeriveSpreads(pageIDs)
	second := issue.DeriveSpreads(pageIDs)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].SpreadNumber, second[i].SpreadNumber)
		assertPageRef(t, first[i].LeftPageID, second[i].LeftPageID, "left")
		assertPageRef(t, first[i].RightPageID, second[i].RightPageID, "right")
	}
}

/*
TestDeriveSpreads_DenseNumbering verifies the spread numbers are always
1..len with no gaps and every non-cover page appears exactly once.
*/
func TestDeriveSpreads_DenseNumbering(t *testing.T) {
	for n := 0; n <= 15; n++ {
		pageIDs := makePageIDs(n)
		spreads := issue.DeriveSpreads(pageIDs)

		seen := make(map[string]int)
		for i, spread := range spreads {
			assert.Equal(t, i+1, spread.SpreadNumber, "n=%d", n)
			if spread.LeftPageID != nil {
				seen[*spread.LeftPageID]++
			}
			if spread.RightPageID != nil {
				seen[*spread.RightPageID]++
			}
		}

		require.Len(t, seen, n, "n=%d", n)
		for id, count := range seen {
			assert.Equal(t, 1, count, "n=%d page=%s", n, id)
		}
	}
}

// # Helpers

func ptr(s string) *string {
	return &s
}

func makePageIDs(n int) []string {
	pageIDs := make([]string, n)
	for i := range pageIDs {
		pageIDs[i] = fmt.Sprintf("page-%03d", i)
	}
	return pageIDs
}

func assertPageRef(t *testing.T, want, got *string, side string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, side)
		return
	}
	require.NotNil(t, got, side)
	assert.Equal(t, *want, *got, side)
}
