package host

import (
	"context"
	"fmt"
)

// Position is a cursor position as the host reports it:
// 1-based line, 0-based column.
type Position struct {
	Line int
	Col  int
}

// String returns the position in line:col form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// FloatConfig describes the float window the renderer should produce.
// Unset fields mean "host default".
type FloatConfig struct {
	// MaxHeight limits the float height in rows. Zero lets the host decide.
	MaxHeight int

	// MaxWidth limits the float width in columns. Zero lets the host decide.
	MaxWidth int

	// PreferTop places the float above the cursor when space allows.
	PreferTop bool

	// OffsetX shifts the float horizontally from the anchor column.
	OffsetX int

	// Title is rendered in the float border. A non-empty title forces a
	// default border.
	Title string

	// Border holds per-edge border flags in top, right, bottom, left
	// order. All zeros means no border.
	Border [4]int

	// CloseButton renders a close affordance in the border.
	CloseButton bool

	// Highlight is the highlight group for the float content.
	Highlight string

	// BorderHighlight is the highlight group for the border.
	BorderHighlight string

	// Cursorline enables the cursor line inside the float.
	Cursorline bool

	// AutoHide closes the float on any cursor movement in the anchor
	// buffer, not only movement away from the anchor position.
	AutoHide bool

	// Modes lists the host modes the float may be created in. The host
	// vetoes creation in any other mode.
	Modes []string

	// AlignTop is an informational hint carrying the current popup menu
	// alignment so the host can place the float on the opposite side.
	AlignTop bool

	// Highlights are extra highlight spans to apply to the content.
	Highlights []HighlightItem

	// CodeBlocks are line ranges to render with filetype syntax styling.
	CodeBlocks []CodeBlock
}

// HighlightItem is a highlight span inside the float content.
// Line is 0-based relative to the float buffer; columns are byte offsets
// and a ColEnd of -1 extends the span to the end of the line.
type HighlightItem struct {
	Group    string
	Line     int
	ColStart int
	ColEnd   int
}

// CodeBlock is a half-open range of 0-based lines to render with the
// syntax rules of a filetype.
type CodeBlock struct {
	Filetype string
	Start    int
	End      int
}

// RenderResult is what a successful float creation reports back. It is
// decoded from the host's positional payload and validated before the
// lifecycle state is touched.
type RenderResult struct {
	// Target is the buffer the float is anchored to.
	Target int

	// Cursor is the anchor cursor position at creation time.
	Cursor Position

	// Win is the created or reused float window.
	Win int

	// Buf is the float's content buffer.
	Buf int

	// AlignTop reports whether the host placed the float above the cursor.
	AlignTop bool
}

// Validate checks that the result identifies a usable float.
func (r *RenderResult) Validate() error {
	if r.Win <= 0 {
		return fmt.Errorf("%w: window id %d", ErrInvalidResult, r.Win)
	}
	if r.Buf <= 0 {
		return fmt.Errorf("%w: buffer id %d", ErrInvalidResult, r.Buf)
	}
	if r.Target <= 0 {
		return fmt.Errorf("%w: target buffer id %d", ErrInvalidResult, r.Target)
	}
	if r.Cursor.Line < 1 || r.Cursor.Col < 0 {
		return fmt.Errorf("%w: cursor position %s", ErrInvalidResult, r.Cursor)
	}
	return nil
}

// Renderer creates and destroys float windows on the host.
// Implementations must be safe for concurrent use.
type Renderer interface {
	// CreateOrReuse asks the host to show a float with the given content,
	// reusing the float identified by win and buf when they are still
	// valid. A nil result with a nil error means the host vetoed creation
	// (wrong mode, no room, empty content).
	CreateOrReuse(ctx context.Context, win, buf int, lines []string, cfg FloatConfig) (*RenderResult, error)

	// Close destroys the given float window. It must tolerate windows
	// that no longer exist.
	Close(win int)

	// Valid reports whether the given float window still exists.
	Valid(ctx context.Context, win int) (bool, error)
}

// ErrorSink receives failures that have no caller to propagate to.
type ErrorSink interface {
	// Report shows the error to the user. It must not block.
	Report(err error)
}
