package docs

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/nimbus/internal/host"
)

// RenderRequest is the flattened form of a document list, ready to hand
// to the host renderer.
type RenderRequest struct {
	// Lines is the float content, one entry per buffer line.
	Lines []string

	// CodeBlocks are the line ranges to render with filetype syntax.
	CodeBlocks []host.CodeBlock

	// Highlights are the spans to apply on top of the content.
	Highlights []host.HighlightItem
}

// Empty reports whether the request has no content lines.
func (r RenderRequest) Empty() bool {
	return len(r.Lines) == 0
}

// rendered is one fragment flattened to lines with fragment-relative
// block and highlight positions.
type rendered struct {
	lines      []string
	blocks     []host.CodeBlock
	highlights []host.HighlightItem
}

// Parse flattens documentation fragments into a single render request.
// Blank fragments are dropped; the survivors are joined with a divider
// line carrying the HighlightDividing group.
func Parse(documents []Documentation) RenderRequest {
	kept := NonBlank(documents)
	if len(kept) == 0 {
		return RenderRequest{}
	}

	parts := make([]rendered, 0, len(kept))
	width := 1
	for _, doc := range kept {
		part := renderDocument(doc)
		for _, line := range part.lines {
			if w := utf8.RuneCountInString(line); w > width {
				width = w
			}
		}
		parts = append(parts, part)
	}
	if width > maxDividerWidth {
		width = maxDividerWidth
	}
	divider := strings.Repeat("─", width)

	var req RenderRequest
	offset := 0
	for i, part := range parts {
		if i > 0 {
			req.Highlights = append(req.Highlights, host.HighlightItem{
				Group:    HighlightDividing,
				Line:     offset,
				ColStart: 0,
				ColEnd:   -1,
			})
			req.Lines = append(req.Lines, divider)
			offset++
		}
		for _, b := range part.blocks {
			b.Start += offset
			b.End += offset
			req.CodeBlocks = append(req.CodeBlocks, b)
		}
		for _, h := range part.highlights {
			h.Line += offset
			req.Highlights = append(req.Highlights, h)
		}
		req.Lines = append(req.Lines, part.lines...)
		offset += len(part.lines)
	}
	return req
}

// renderDocument flattens one fragment. Markdown fragments have their
// fence marker lines removed and the fenced ranges recorded as code
// blocks; other filetypes become a single block covering the fragment.
func renderDocument(doc Documentation) rendered {
	lines := splitContent(doc.Content)

	var part rendered
	if doc.Filetype == "markdown" {
		part = extractFences(lines)
	} else {
		part.lines = lines
		if doc.Filetype != "" && doc.Filetype != "txt" && len(lines) > 0 {
			part.blocks = []host.CodeBlock{{Filetype: doc.Filetype, Start: 0, End: len(lines)}}
		}
	}

	if doc.Active != nil && len(part.lines) > 0 {
		start, end := doc.Active[0], doc.Active[1]
		if start >= 0 && end > start {
			part.highlights = append(part.highlights, host.HighlightItem{
				Group:    HighlightActive,
				Line:     0,
				ColStart: start,
				ColEnd:   end,
			})
		}
	}
	part.highlights = append(part.highlights, doc.Highlights...)
	return part
}

// extractFences removes ``` marker lines and records the enclosed ranges.
// An unterminated fence runs to the end of the fragment.
func extractFences(lines []string) rendered {
	var part rendered
	inFence := false
	fenceType := ""
	fenceStart := 0

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				inFence = false
				if len(part.lines) > fenceStart {
					part.blocks = append(part.blocks, host.CodeBlock{
						Filetype: fenceType,
						Start:    fenceStart,
						End:      len(part.lines),
					})
				}
			} else {
				inFence = true
				fenceType = strings.TrimSpace(trimmed[3:])
				fenceStart = len(part.lines)
			}
			continue
		}
		part.lines = append(part.lines, line)
	}

	if inFence && len(part.lines) > fenceStart {
		part.blocks = append(part.blocks, host.CodeBlock{
			Filetype: fenceType,
			Start:    fenceStart,
			End:      len(part.lines),
		})
	}
	return part
}

// splitContent splits fragment text into lines, tolerating CRLF input
// and dropping trailing blank lines.
func splitContent(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
