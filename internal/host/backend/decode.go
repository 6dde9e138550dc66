package backend

import (
	"fmt"

	"github.com/dshills/nimbus/internal/docs"
	"github.com/dshills/nimbus/internal/float"
	"github.com/dshills/nimbus/internal/host"
)

// toInt normalizes the numeric types the msgpack decoder produces.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// decodeResult maps the positional array float.lua returns onto a
// RenderResult: [target, [line, col], win, buf, alignTop].
func decodeResult(raw []any) (*host.RenderResult, error) {
	if len(raw) != 5 {
		return nil, fmt.Errorf("%w: result has %d elements, want 5", host.ErrInvalidResult, len(raw))
	}
	target, ok := toInt(raw[0])
	if !ok {
		return nil, fmt.Errorf("%w: target is %T", host.ErrInvalidResult, raw[0])
	}
	pos, ok := raw[1].([]any)
	if !ok || len(pos) != 2 {
		return nil, fmt.Errorf("%w: cursor is %T", host.ErrInvalidResult, raw[1])
	}
	line, lok := toInt(pos[0])
	col, cok := toInt(pos[1])
	if !lok || !cok {
		return nil, fmt.Errorf("%w: cursor elements are %T/%T", host.ErrInvalidResult, pos[0], pos[1])
	}
	win, ok := toInt(raw[2])
	if !ok {
		return nil, fmt.Errorf("%w: window is %T", host.ErrInvalidResult, raw[2])
	}
	buf, ok := toInt(raw[3])
	if !ok {
		return nil, fmt.Errorf("%w: buffer is %T", host.ErrInvalidResult, raw[3])
	}
	alignTop, ok := raw[4].(bool)
	if !ok {
		return nil, fmt.Errorf("%w: alignTop is %T", host.ErrInvalidResult, raw[4])
	}
	return &host.RenderResult{
		Target:   target,
		Cursor:   host.Position{Line: line, Col: col},
		Win:      win,
		Buf:      buf,
		AlignTop: alignTop,
	}, nil
}

// decodeDocs maps the RPC documents payload: an array of tables with
// filetype, content and optional active range and highlight entries.
func decodeDocs(raw []any) ([]docs.Documentation, error) {
	out := make([]docs.Documentation, 0, len(raw))
	for i, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document %d is %T, want a table", i, item)
		}
		doc := docs.Documentation{}
		doc.Filetype, _ = fields["filetype"].(string)
		doc.Content, ok = fields["content"].(string)
		if !ok {
			return nil, fmt.Errorf("document %d has no content string", i)
		}
		if active, ok := fields["active"].([]any); ok && len(active) == 2 {
			s, sok := toInt(active[0])
			e, eok := toInt(active[1])
			if sok && eok {
				doc.Active = &[2]int{s, e}
			}
		}
		if items, ok := fields["highlights"].([]any); ok {
			for _, it := range items {
				if h, ok := decodeHighlight(it); ok {
					doc.Highlights = append(doc.Highlights, h)
				}
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

func decodeHighlight(v any) (host.HighlightItem, bool) {
	fields, ok := v.(map[string]any)
	if !ok {
		return host.HighlightItem{}, false
	}
	group, ok := fields["group"].(string)
	if !ok || group == "" {
		return host.HighlightItem{}, false
	}
	line, lok := toInt(fields["line"])
	start, sok := toInt(fields["colStart"])
	end, eok := toInt(fields["colEnd"])
	if !lok || !sok || !eok {
		return host.HighlightItem{}, false
	}
	return host.HighlightItem{Group: group, Line: line, ColStart: start, ColEnd: end}, true
}

// decodeOptions overlays the recognized option fields onto base. Absent
// fields keep the base value, so defaults flow through untouched.
func decodeOptions(fields map[string]any, base float.Options) float.Options {
	opts := base
	if v, ok := toInt(fields["maxHeight"]); ok {
		opts.MaxHeight = v
	}
	if v, ok := toInt(fields["maxWidth"]); ok {
		opts.MaxWidth = v
	}
	if v, ok := fields["preferTop"].(bool); ok {
		opts.PreferTop = v
	}
	if v, ok := toInt(fields["offsetX"]); ok {
		opts.OffsetX = v
	}
	if v, ok := fields["title"].(string); ok {
		opts.Title = v
	}
	if border, ok := fields["border"].([]any); ok && len(border) == 4 {
		var b [4]int
		valid := true
		for i, side := range border {
			n, ok := toInt(side)
			if !ok {
				valid = false
				break
			}
			b[i] = n
		}
		if valid {
			opts.Border = b
		}
	}
	if v, ok := fields["closeButton"].(bool); ok {
		opts.CloseButton = v
	}
	if v, ok := fields["highlight"].(string); ok {
		opts.Highlight = v
	}
	if v, ok := fields["borderhighlight"].(string); ok {
		opts.BorderHighlight = v
	}
	if v, ok := fields["cursorline"].(bool); ok {
		opts.Cursorline = v
	}
	if v, ok := fields["autoHide"].(bool); ok {
		opts.AutoHide = v
	}
	if modes, ok := fields["modes"].([]any); ok {
		out := make([]string, 0, len(modes))
		for _, m := range modes {
			s, ok := m.(string)
			if !ok {
				out = nil
				break
			}
			out = append(out, s)
		}
		if len(out) > 0 {
			opts.Modes = out
		}
	}
	return opts
}
