// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import "github.com/zinery/zinery/pkg/pointer"

// # Spread Derivation

/*
DeriveSpreads maps an ordered page-id sequence into the reader's spread
layout.

Description: The first spread is always a single-sided cover occupying
the right-hand position. Remaining pages are consumed two at a time in
order; an odd tail leaves the final spread with an empty right side.
Spread numbers are dense, starting at 1, in production order.

The function is pure: the same input sequence always yields the same
spread list, so regeneration is idempotent. Reading direction is a
presentation concern of the reading client and never reverses the output.

Parameters:
  - pageIDs: page identifiers ordered by ascending page number

Returns:
  - []*Spread: derived spreads with SpreadNumber and page references set;
    ID and IssueID are left for the store to assign at persistence time
*/
func DeriveSpreads(pageIDs []string) []*Spread {
	if len(pageIDs) == 0 {
		return []*Spread{}
	}

	spreads := make([]*Spread, 0, SpreadCountFor(len(pageIDs)))

	// Cover spread: right-hand page only. References are copied so the
	// spreads never alias the caller's slice.
	spreads = append(spreads, &Spread{
		SpreadNumber: 1,
		LeftPageID:   nil,
		RightPageID:  pointer.To(pageIDs[0]),
	})

	for i := 1; i < len(pageIDs); i += 2 {
		spread := &Spread{
			SpreadNumber: len(spreads) + 1,
			LeftPageID:   pointer.To(pageIDs[i]),
		}
		if i+1 < len(pageIDs) {
			spread.RightPageID = pointer.To(pageIDs[i+1])
		}
		spreads = append(spreads, spread)
	}

	return spreads
}

// SpreadCountFor returns the number of spreads a page count derives to:
// 0 for an empty issue, otherwise 1 + ceil((n-1)/2).
func SpreadCountFor(pageCount int) int {
	if pageCount == 0 {
		return 0
	}
	// ceil((n-1)/2) == n/2 in integer division.
	return 1 + pageCount/2
}
