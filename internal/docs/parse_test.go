package docs

import (
	"strings"
	"testing"

	"github.com/dshills/nimbus/internal/host"
)

func TestDocumentation_Blank(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", true},
		{"whitespace only", "  \n\t\n", true},
		{"text", "hello", false},
		{"text after blanks", "\n\nhello", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Documentation{Content: tt.content}
			if got := d.Blank(); got != tt.want {
				t.Errorf("Blank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	req := Parse(nil)
	if !req.Empty() {
		t.Error("expected empty request for nil input")
	}

	req = Parse([]Documentation{
		{Filetype: "markdown", Content: "   "},
		{Filetype: "txt", Content: "\n\n"},
	})
	if !req.Empty() {
		t.Error("expected empty request when all fragments are blank")
	}
}

func TestParse_SinglePlainFragment(t *testing.T) {
	req := Parse([]Documentation{{Filetype: "txt", Content: "line one\nline two\n\n"}})

	want := []string{"line one", "line two"}
	if len(req.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(req.Lines), len(want), req.Lines)
	}
	for i := range want {
		if req.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, req.Lines[i], want[i])
		}
	}
	if len(req.CodeBlocks) != 0 {
		t.Errorf("txt fragment should produce no code blocks, got %v", req.CodeBlocks)
	}
	if len(req.Highlights) != 0 {
		t.Errorf("expected no highlights, got %v", req.Highlights)
	}
}

func TestParse_NonMarkdownFiletypeBecomesCodeBlock(t *testing.T) {
	req := Parse([]Documentation{{Filetype: "go", Content: "func main() {}\nvar x int"}})

	if len(req.CodeBlocks) != 1 {
		t.Fatalf("got %d code blocks, want 1", len(req.CodeBlocks))
	}
	b := req.CodeBlocks[0]
	if b.Filetype != "go" || b.Start != 0 || b.End != 2 {
		t.Errorf("code block = %+v, want {go 0 2}", b)
	}
}

func TestParse_MarkdownFences(t *testing.T) {
	content := "Some docs.\n```go\nfunc F() {}\n```\ntrailing text"
	req := Parse([]Documentation{{Filetype: "markdown", Content: content}})

	want := []string{"Some docs.", "func F() {}", "trailing text"}
	if len(req.Lines) != len(want) {
		t.Fatalf("got lines %v, want %v", req.Lines, want)
	}
	for i := range want {
		if req.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, req.Lines[i], want[i])
		}
	}

	if len(req.CodeBlocks) != 1 {
		t.Fatalf("got %d code blocks, want 1", len(req.CodeBlocks))
	}
	b := req.CodeBlocks[0]
	if b.Filetype != "go" || b.Start != 1 || b.End != 2 {
		t.Errorf("code block = %+v, want {go 1 2}", b)
	}
}

func TestParse_UnterminatedFence(t *testing.T) {
	req := Parse([]Documentation{{Filetype: "markdown", Content: "```lua\nprint('hi')\nprint('bye')"}})

	if len(req.Lines) != 2 {
		t.Fatalf("got lines %v, want 2 content lines", req.Lines)
	}
	if len(req.CodeBlocks) != 1 {
		t.Fatalf("got %d code blocks, want 1", len(req.CodeBlocks))
	}
	b := req.CodeBlocks[0]
	if b.Filetype != "lua" || b.Start != 0 || b.End != 2 {
		t.Errorf("code block = %+v, want {lua 0 2}", b)
	}
}

func TestParse_DividerBetweenFragments(t *testing.T) {
	req := Parse([]Documentation{
		{Filetype: "txt", Content: "first fragment line"},
		{Filetype: "txt", Content: "second"},
	})

	if len(req.Lines) != 3 {
		t.Fatalf("got lines %v, want 3 (content, divider, content)", req.Lines)
	}
	divider := req.Lines[1]
	if !strings.HasPrefix(divider, "─") {
		t.Errorf("expected divider line, got %q", divider)
	}
	if got, want := len([]rune(divider)), len("first fragment line"); got != want {
		t.Errorf("divider width = %d runes, want %d (longest line)", got, want)
	}

	var dividerHL *host.HighlightItem
	for i := range req.Highlights {
		if req.Highlights[i].Group == HighlightDividing {
			dividerHL = &req.Highlights[i]
		}
	}
	if dividerHL == nil {
		t.Fatal("expected a dividing highlight")
	}
	if dividerHL.Line != 1 || dividerHL.ColStart != 0 || dividerHL.ColEnd != -1 {
		t.Errorf("dividing highlight = %+v, want full line 1", dividerHL)
	}
}

func TestParse_DividerWidthIsCapped(t *testing.T) {
	long := strings.Repeat("x", 300)
	req := Parse([]Documentation{
		{Filetype: "txt", Content: long},
		{Filetype: "txt", Content: "short"},
	})

	if got := len([]rune(req.Lines[1])); got != 80 {
		t.Errorf("divider width = %d, want capped at 80", got)
	}
}

func TestParse_ActiveRange(t *testing.T) {
	active := [2]int{4, 9}
	req := Parse([]Documentation{{
		Filetype: "txt",
		Content:  "fn(a: int, b: int)",
		Active:   &active,
	}})

	if len(req.Highlights) != 1 {
		t.Fatalf("got %d highlights, want 1", len(req.Highlights))
	}
	h := req.Highlights[0]
	if h.Group != HighlightActive || h.Line != 0 || h.ColStart != 4 || h.ColEnd != 9 {
		t.Errorf("active highlight = %+v, want {%s 0 4 9}", h, HighlightActive)
	}
}

func TestParse_ActiveRangeOnSecondFragmentShifts(t *testing.T) {
	active := [2]int{0, 2}
	req := Parse([]Documentation{
		{Filetype: "txt", Content: "first"},
		{Filetype: "txt", Content: "fn(x)", Active: &active},
	})

	var found bool
	for _, h := range req.Highlights {
		if h.Group == HighlightActive {
			found = true
			if h.Line != 2 {
				t.Errorf("active highlight line = %d, want 2 (after divider)", h.Line)
			}
		}
	}
	if !found {
		t.Fatal("expected an active highlight")
	}
}

func TestParse_InvalidActiveRangeIgnored(t *testing.T) {
	for _, active := range [][2]int{{-1, 3}, {5, 5}, {7, 2}} {
		a := active
		req := Parse([]Documentation{{Filetype: "txt", Content: "text", Active: &a}})
		if len(req.Highlights) != 0 {
			t.Errorf("active %v: expected no highlights, got %v", active, req.Highlights)
		}
	}
}

func TestParse_FragmentHighlightsShift(t *testing.T) {
	req := Parse([]Documentation{
		{Filetype: "txt", Content: "one\ntwo"},
		{Filetype: "txt", Content: "three", Highlights: []host.HighlightItem{
			{Group: "Special", Line: 0, ColStart: 0, ColEnd: 5},
		}},
	})

	var special *host.HighlightItem
	for i := range req.Highlights {
		if req.Highlights[i].Group == "Special" {
			special = &req.Highlights[i]
		}
	}
	if special == nil {
		t.Fatal("expected fragment highlight to survive")
	}
	if special.Line != 3 {
		t.Errorf("fragment highlight line = %d, want 3 (two lines plus divider)", special.Line)
	}
}

func TestParse_CRLFContent(t *testing.T) {
	req := Parse([]Documentation{{Filetype: "txt", Content: "a\r\nb\r\n"}})
	if len(req.Lines) != 2 || req.Lines[0] != "a" || req.Lines[1] != "b" {
		t.Errorf("got lines %v, want [a b]", req.Lines)
	}
}
