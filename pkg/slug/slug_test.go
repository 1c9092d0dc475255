// Copyright (c) 2026 Zinery. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zinery/zinery/pkg/slug"
)

/*
TestFrom checks the slug pipeline: accent folding, lowercasing, and
hyphen cleanup.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Paper Trails", "paper-trails"},
		{"accents", "Café Crémerie", "cafe-cremerie"},
		{"punctuation", "Issue #4: The Fold!", "issue-4-the-fold"},
		{"collapsed_hyphens", "a -- b", "a-b"},
		{"trimmed", "  trimmed  ", "trimmed"},
		{"digits", "2026 Zine Fair", "2026-zine-fair"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
