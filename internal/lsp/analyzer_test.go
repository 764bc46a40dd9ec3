package lsp

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/pipetka/pipetka/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const sampleConfig = `server {
  addr            = ":9090"
  allowed_origins = ["https://example.com"]
}

clustering {
  colors = 8
}

names {
  brand      = "#FF5733"
  brand_dark = darken(names.brand, 0.2)
  accent     = "rgb(0, 128, 255)"
}
`

func TestAnalyze_ValidConfig(t *testing.T) {
	result := Analyze("pipetka.hcl", sampleConfig)

	if len(result.Diagnostics) != 0 {
		for _, d := range result.Diagnostics {
			t.Logf("  diagnostic: [%v] %s", *d.Severity, d.Message)
		}
		t.Fatalf("expected 0 diagnostics, got %d", len(result.Diagnostics))
	}

	wantNames := []struct {
		name string
		c    color.Color
	}{
		{"brand", color.Color{R: 255, G: 87, B: 51}},
		{"brand_dark", color.Color{R: 204, G: 36, B: 0}},
		{"accent", color.Color{R: 0, G: 128, B: 255}},
	}
	if len(result.Names) != len(wantNames) {
		t.Fatalf("got %d names, want %d", len(result.Names), len(wantNames))
	}
	for i, want := range wantNames {
		got := result.Names[i]
		if got.Name != want.name || got.Color != want.c {
			t.Errorf("Names[%d] = %s %s, want %s %s", i, got.Name, got.Color.Hex(), want.name, want.c.Hex())
		}
	}

	if _, ok := result.Dictionary().Lookup("brand_dark"); !ok {
		t.Error("Dictionary() should include custom names")
	}
}

func TestAnalyze_SymbolsAndColors(t *testing.T) {
	result := Analyze("pipetka.hcl", sampleConfig)

	sym, ok := result.Symbols["names.brand"]
	if !ok {
		t.Fatal("missing symbol names.brand")
	}
	if sym.Start.Line != 10 || sym.Start.Character != 2 {
		t.Errorf("names.brand symbol at %d:%d, want 10:2", sym.Start.Line, sym.Start.Character)
	}

	if len(result.Colors) != 3 {
		t.Fatalf("got %d color locations, want 3", len(result.Colors))
	}
	if result.Colors[0].IsRef {
		t.Error("literal color should not be a reference")
	}
	if !result.Colors[1].IsRef {
		t.Error("darken() call should be a reference")
	}
	if got := result.Colors[1].Range.Start; got.Line != 11 || got.Character != 15 {
		t.Errorf("darken() range starts at %d:%d, want 11:15", got.Line, got.Character)
	}
}

func TestAnalyze_Diagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
		wantSev protocol.DiagnosticSeverity
	}{
		{
			name:    "syntax error",
			content: "names {\n  brand = \n",
			wantSev: DiagError,
		},
		{
			name:    "unknown block",
			content: "theme {\n}\n",
			wantMsg: `unknown block "theme"`,
			wantSev: DiagError,
		},
		{
			name:    "top level attribute",
			content: "colors = 4\n",
			wantMsg: `unexpected attribute "colors"`,
			wantSev: DiagError,
		},
		{
			name:    "duplicate block",
			content: "server {\n}\nserver {\n}\n",
			wantMsg: "duplicate server block",
			wantSev: DiagError,
		},
		{
			name:    "invalid color",
			content: "names {\n  bad = \"#GGGGGG\"\n}\n",
			wantMsg: `invalid color "#GGGGGG"`,
			wantSev: DiagError,
		},
		{
			name:    "forward reference",
			content: "names {\n  a = names.b\n  b = \"#000000\"\n}\n",
			wantMsg: "evaluating names.a",
			wantSev: DiagError,
		},
		{
			name:    "nested block in names",
			content: "names {\n  group {\n  }\n}\n",
			wantMsg: "nested blocks are not allowed",
			wantSev: DiagError,
		},
		{
			name:    "unknown attribute",
			content: "server {\n  port = 80\n}\n",
			wantMsg: "unknown attribute server.port",
			wantSev: DiagWarning,
		},
		{
			name:    "out of range value",
			content: "clustering {\n  colors = 0\n}\n",
			wantMsg: "colors",
			wantSev: DiagError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("pipetka.hcl", tt.content)
			if len(result.Diagnostics) == 0 {
				t.Fatal("expected at least one diagnostic")
			}
			d := result.Diagnostics[0]
			if *d.Severity != tt.wantSev {
				t.Errorf("severity = %v, want %v", *d.Severity, tt.wantSev)
			}
			if !strings.Contains(d.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", d.Message, tt.wantMsg)
			}
			if d.Source == nil || *d.Source != diagSource {
				t.Errorf("source = %v, want %q", d.Source, diagSource)
			}
		})
	}
}

func TestAnalyze_Stylesheet(t *testing.T) {
	content := ".a { color: #FF0000; background: rgb(0, 0, 255); }\n.b { color: hsl(120, 100%, 50%); border-color: #XYZXYZ; }\n"
	result := Analyze("file:///tmp/site.css", content)

	if len(result.Diagnostics) != 0 {
		t.Errorf("stylesheets should not produce diagnostics, got %d", len(result.Diagnostics))
	}

	want := []struct {
		line, char uint32
		hex        string
	}{
		{0, 12, "#FF0000"},
		{0, 33, "#0000FF"},
		{1, 12, "#00FF00"},
	}
	if len(result.Colors) != len(want) {
		t.Fatalf("got %d colors, want %d", len(result.Colors), len(want))
	}
	for i, w := range want {
		got := result.Colors[i]
		if got.Range.Start.Line != w.line || got.Range.Start.Character != w.char {
			t.Errorf("Colors[%d] at %d:%d, want %d:%d", i, got.Range.Start.Line, got.Range.Start.Character, w.line, w.char)
		}
		if got.Color.Hex() != w.hex {
			t.Errorf("Colors[%d] = %s, want %s", i, got.Color.Hex(), w.hex)
		}
	}
}

func TestAnalyze_StylesheetNonASCII(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end uint32
	}{
		{"cyrillic comment", "/* Цвет бренда */ .btn { color: #FF5733; }", 32, 39},
		{"emoji comment", "/* 🎨 */ a { color: #FF5733 }", 20, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("file:///tmp/site.css", tt.content)
			if len(result.Colors) != 1 {
				t.Fatalf("got %d colors, want 1", len(result.Colors))
			}
			r := result.Colors[0].Range
			if r.Start.Character != tt.start || r.End.Character != tt.end {
				t.Errorf("range = %d-%d, want %d-%d", r.Start.Character, r.End.Character, tt.start, tt.end)
			}
			if got := extractText(tt.content, r); got != "#FF5733" {
				t.Errorf("extractText() = %q, want #FF5733", got)
			}
		})
	}
}

func TestHCLPosToLSP(t *testing.T) {
	got := hclPosToLSP(hcl.Pos{Line: 3, Column: 5})
	if got.Line != 2 || got.Character != 4 {
		t.Errorf("hclPosToLSP = %d:%d, want 2:4", got.Line, got.Character)
	}
	if zero := hclPosToLSP(hcl.Pos{}); zero.Line != 0 || zero.Character != 0 {
		t.Errorf("hclPosToLSP(zero) = %d:%d, want 0:0", zero.Line, zero.Character)
	}
}
