package lsp

import (
	"fmt"
	"strings"

	"github.com/pipetka/pipetka"
	"github.com/pipetka/pipetka/internal/contrast"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := splitLines(content)

	startLine := int(r.Start.Line)
	endLine := min(int(r.End.Line), len(lines)-1)
	if startLine >= len(lines) {
		return ""
	}

	clip := byteOffset

	if startLine == endLine {
		line := lines[startLine]
		start, end := clip(line, r.Start.Character), clip(line, r.End.Character)
		if start > end {
			return ""
		}
		return line[start:end]
	}

	parts := make([]string, 0, endLine-startLine+1)
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		switch i {
		case startLine:
			parts = append(parts, line[clip(line, r.Start.Character):])
		case endLine:
			parts = append(parts, line[:clip(line, r.End.Character)])
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

func levelLabel(r contrast.Result) string {
	switch {
	case r.Levels.AAANormal:
		return "AAA"
	case r.Levels.AANormal:
		return "AA"
	case r.Levels.AALarge:
		return "AA large"
	default:
		return "fail"
	}
}

// hoverMarkdown renders the description of one color.
func hoverMarkdown(title string, rep pipetka.Report) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "**%s**\n\n", title)
	}
	fmt.Fprintf(&sb, "%s\n\n", rep.Algorithmic)
	fmt.Fprintf(&sb, "`%s` · `rgb(%d, %d, %d)` · `hsl(%g, %g%%, %g%%)`\n\n",
		rep.Hex, rep.RGB.R, rep.RGB.G, rep.RGB.B, rep.HSL.H, rep.HSL.S, rep.HSL.L)
	if len(rep.Names) > 0 {
		fmt.Fprintf(&sb, "Nearest: %s (ΔE %.2f)\n\n", rep.Names[0].Name, rep.Names[0].Distance)
	}
	fmt.Fprintf(&sb, "Family: %s · Tone: %s\n\n", rep.Family, rep.Tone)
	fmt.Fprintf(&sb, "On white: %.2f:1 %s · On black: %.2f:1 %s",
		rep.OnWhite.Ratio, levelLabel(rep.OnWhite), rep.OnBlack.Ratio, levelLabel(rep.OnBlack))
	return sb.String()
}

// hover returns a description of the color under pos, or nil if there is none.
// References show their source text as a title.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		title := ""
		if cl.IsRef {
			title = extractText(content, cl.Range)
		}
		rep := pipetka.Describe(cl.Color, result.Dictionary())

		rng := cl.Range
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: hoverMarkdown(title, rep),
			},
			Range: &rng,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.docs.Result(uri)
	if result == nil {
		return nil, nil
	}
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return hover(result, content, params.Position), nil
}
