package lsp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// nameRefAtCursor returns the "names.<name>" reference under the cursor, or
// "" if the cursor is not on one. character counts UTF-16 units.
func nameRefAtCursor(line string, character uint32) string {
	col := byteOffset(line, character)
	if col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	start := col
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}

	parts := strings.Split(line[start:end], ".")
	if len(parts) != 2 || parts[0] != "names" || parts[1] == "" {
		return ""
	}
	return parts[0] + "." + parts[1]
}

// isIdentRune reports whether r can appear in a dotted HCL traversal.
func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

// definition returns the location of the name referenced at pos.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	ref := nameRefAtCursor(lines[pos.Line], pos.Character)
	if ref == "" {
		return nil
	}
	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.docs.Result(uri)
	if result == nil {
		return nil, nil
	}
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return definition(result, content, uri, params.Position), nil
}
