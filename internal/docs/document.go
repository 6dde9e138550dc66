// Package docs models the documentation fragments a float displays and
// turns them into a flat render request: plain lines plus structured
// highlight and code block metadata the host applies after the float is
// created. Markdown fragments have their fenced code blocks extracted;
// fragments of any other filetype are rendered verbatim as one block of
// that filetype.
package docs

import (
	"strings"

	"github.com/dshills/nimbus/internal/host"
)

// Highlight groups applied by Parse.
const (
	// HighlightActive marks the active span of a documentation fragment,
	// typically the current parameter of a signature.
	HighlightActive = "NimbusFloatActive"

	// HighlightDividing is applied to the divider line between fragments.
	HighlightDividing = "NimbusFloatDividing"
)

// maxDividerWidth caps the divider drawn between fragments.
const maxDividerWidth = 80

// Documentation is one fragment of float content.
type Documentation struct {
	// Filetype selects host syntax styling. "markdown" fragments are
	// scanned for fenced code blocks.
	Filetype string

	// Content is the fragment text. Trailing blank lines are dropped
	// when rendering.
	Content string

	// Active optionally marks a byte offset span in the first content
	// line to emphasize.
	Active *[2]int

	// Highlights are extra spans with lines relative to this fragment.
	Highlights []host.HighlightItem
}

// Blank reports whether the fragment has no visible content.
func (d Documentation) Blank() bool {
	return strings.TrimSpace(d.Content) == ""
}

// NonBlank returns the fragments that have visible content.
func NonBlank(documents []Documentation) []Documentation {
	var kept []Documentation
	for _, d := range documents {
		if !d.Blank() {
			kept = append(kept, d)
		}
	}
	return kept
}
