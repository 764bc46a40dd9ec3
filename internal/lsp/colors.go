package lsp

import (
	"math"
	"strings"

	"github.com/pipetka/pipetka/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color.Color to a protocol.Color with 0.0-1.0 channels.
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

// colorFromLSP is the inverse of colorToLSP. Channels are rounded, not
// truncated, so a picker round trip is lossless.
func colorFromLSP(c protocol.Color) color.Color {
	ch := func(v float32) uint8 {
		return uint8(math.Round(math.Min(math.Max(float64(v), 0), 1) * 255))
	}
	return color.Color{R: ch(c.Red), G: ch(c.Green), B: ch(c.Blue)}
}

func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers hex, rgb() and hsl() renderings of the picked
// color. The first entry keeps the notation of the text being replaced.
// References and function calls are never rewritten.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	bare := strings.Trim(text, `"`)
	if strings.HasPrefix(bare, "names.") || isFunctionCall(bare) && !isColorFunction(bare) {
		return []protocol.ColorPresentation{}
	}
	if _, ok := color.ParseColor(bare); !ok {
		return []protocol.ColorPresentation{}
	}

	c := colorFromLSP(params.Color)
	labels := []string{c.Hex(), c.RGB(), c.HSLString()}
	lower := strings.ToLower(bare)
	switch {
	case strings.HasPrefix(lower, "rgb"):
		labels[0], labels[1] = labels[1], labels[0]
	case strings.HasPrefix(lower, "hsl"):
		labels[0], labels[2] = labels[2], labels[0]
	}

	quoted := strings.HasPrefix(text, `"`)
	out := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		newText := label
		if quoted {
			newText = `"` + label + `"`
		}
		out = append(out, protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: newText},
		})
	}
	return out
}

func isFunctionCall(s string) bool {
	i := strings.IndexByte(s, '(')
	return i > 0 && strings.HasSuffix(s, ")")
}

func isColorFunction(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "rgb") || strings.HasPrefix(lower, "hsl")
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.docs.Result(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
