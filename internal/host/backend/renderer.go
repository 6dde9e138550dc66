package backend

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/dshills/nimbus/internal/host"
)

//go:embed float.lua
var floatLua string

// Renderer drives the embedded Lua float routines over the RPC
// connection. It implements host.Renderer.
type Renderer struct {
	nv *Nvim
}

// NewRenderer creates a renderer backed by the given connection.
func NewRenderer(nv *Nvim) *Renderer {
	return &Renderer{nv: nv}
}

func (r *Renderer) CreateOrReuse(_ context.Context, win, buf int, lines []string, cfg host.FloatConfig) (*host.RenderResult, error) {
	var raw []any
	if err := r.nv.exec("return __nimbus.create(...)", &raw, win, buf, lines, configPayload(cfg)); err != nil {
		return nil, fmt.Errorf("host create: %w", err)
	}
	if len(raw) == 0 {
		// Host veto: no float was wanted here, and none remains.
		return nil, nil
	}
	return decodeResult(raw)
}

func (r *Renderer) Close(win int) {
	if win == 0 {
		return
	}
	_ = r.nv.exec("__nimbus.close(...)", nil, win)
}

func (r *Renderer) Valid(_ context.Context, win int) (bool, error) {
	var ok bool
	if err := r.nv.exec("return __nimbus.valid(...)", &ok, win); err != nil {
		return false, fmt.Errorf("host probe: %w", err)
	}
	return ok, nil
}

// configPayload flattens a FloatConfig into the table float.lua reads.
func configPayload(cfg host.FloatConfig) map[string]any {
	highlights := make([]map[string]any, 0, len(cfg.Highlights))
	for _, h := range cfg.Highlights {
		highlights = append(highlights, map[string]any{
			"group":     h.Group,
			"line":      h.Line,
			"col_start": h.ColStart,
			"col_end":   h.ColEnd,
		})
	}
	blocks := make([]map[string]any, 0, len(cfg.CodeBlocks))
	for _, b := range cfg.CodeBlocks {
		blocks = append(blocks, map[string]any{
			"filetype": b.Filetype,
			"start":    b.Start,
			"end":      b.End,
		})
	}
	return map[string]any{
		"max_height":       cfg.MaxHeight,
		"max_width":        cfg.MaxWidth,
		"prefer_top":       cfg.PreferTop,
		"offset_x":         cfg.OffsetX,
		"title":            cfg.Title,
		"border":           []int{cfg.Border[0], cfg.Border[1], cfg.Border[2], cfg.Border[3]},
		"close_button":     cfg.CloseButton,
		"highlight":        cfg.Highlight,
		"border_highlight": cfg.BorderHighlight,
		"cursorline":       cfg.Cursorline,
		"auto_hide":        cfg.AutoHide,
		"modes":            cfg.Modes,
		"align_top":        cfg.AlignTop,
		"highlights":       highlights,
		"code_blocks":      blocks,
	}
}
