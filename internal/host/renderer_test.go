package host

import (
	"errors"
	"testing"
)

func TestRenderResult_Validate(t *testing.T) {
	valid := RenderResult{
		Target: 3,
		Cursor: Position{Line: 10, Col: 4},
		Win:    1001,
		Buf:    7,
	}

	tests := []struct {
		name   string
		mutate func(*RenderResult)
		wantOK bool
	}{
		{"valid result", func(r *RenderResult) {}, true},
		{"zero window", func(r *RenderResult) { r.Win = 0 }, false},
		{"negative window", func(r *RenderResult) { r.Win = -1 }, false},
		{"zero buffer", func(r *RenderResult) { r.Buf = 0 }, false},
		{"zero target", func(r *RenderResult) { r.Target = 0 }, false},
		{"zero line", func(r *RenderResult) { r.Cursor.Line = 0 }, false},
		{"negative column", func(r *RenderResult) { r.Cursor.Col = -1 }, false},
		{"column zero is valid", func(r *RenderResult) { r.Cursor.Col = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidResult) {
					t.Errorf("Validate() error does not wrap ErrInvalidResult: %v", err)
				}
			}
		})
	}
}

func TestPosition_String(t *testing.T) {
	p := Position{Line: 12, Col: 3}
	if got := p.String(); got != "12:3" {
		t.Errorf("String() = %q, want %q", got, "12:3")
	}
}
