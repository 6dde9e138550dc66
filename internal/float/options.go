package float

// Defaults applied by DefaultOptions.
const (
	// DefaultMaxWidth is the stock width cap in columns.
	DefaultMaxWidth = 80

	// DefaultHighlight is the stock content highlight group.
	DefaultHighlight = "NimbusFloating"
)

// defaultModes are the host modes a float may be created in when the
// caller does not restrict them.
var defaultModes = []string{"n", "i", "ic", "s"}

// Options configures one Show request. Construct from DefaultOptions
// (or Manager.Defaults) and override fields; a zero Options value
// disables auto hide and lets the host pick all dimensions.
type Options struct {
	// MaxHeight limits the float height in rows. Zero means no cap
	// beyond the manager default.
	MaxHeight int

	// MaxWidth limits the float width in columns. Zero means the
	// manager default.
	MaxWidth int

	// PreferTop places the float above the cursor when space allows.
	PreferTop bool

	// OffsetX shifts the float horizontally from the anchor column.
	OffsetX int

	// Title is rendered in the border. A non-empty title forces a
	// default border.
	Title string

	// Border holds per-edge border flags in top, right, bottom, left
	// order. All zeros means no border unless Title forces one.
	Border [4]int

	// CloseButton renders a close affordance in the border.
	CloseButton bool

	// Highlight is the content highlight group. Empty means the
	// manager default.
	Highlight string

	// BorderHighlight is the border highlight group. Empty lets the
	// host derive it from Highlight.
	BorderHighlight string

	// Cursorline enables the cursor line inside the float.
	Cursorline bool

	// AutoHide closes the float on any cursor movement instead of only
	// movement away from the anchor.
	AutoHide bool

	// Modes lists the host modes the float may be created in. Empty
	// means the manager default.
	Modes []string
}

// DefaultOptions returns the stock options: auto hide on, width capped
// at DefaultMaxWidth, creation allowed in normal, insert, insert
// completion and select modes.
func DefaultOptions() Options {
	return Options{
		MaxWidth:  DefaultMaxWidth,
		AutoHide:  true,
		Highlight: DefaultHighlight,
		Modes:     append([]string(nil), defaultModes...),
	}
}
