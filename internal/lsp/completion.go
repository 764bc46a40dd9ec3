package lsp

import (
	"strings"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot blockContext = iota
	contextServer
	contextClustering
	contextNames
	contextUnknown
)

// complete produces completion items for a config document at pos.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	textBeforeCursor := line[:byteOffset(line, pos.Character)]

	if items, ok := tryNamesCompletion(result, textBeforeCursor); ok {
		return items
	}

	if isValuePosition(textBeforeCursor) {
		return valueCompletions()
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextRoot:
		return topLevelCompletions(lines)
	case contextServer:
		return attributeCompletions("server", lines, int(pos.Line))
	case contextClustering:
		return attributeCompletions("clustering", lines, int(pos.Line))
	}
	return nil
}

// tryNamesCompletion offers the document's custom names after "names.".
func tryNamesCompletion(result *AnalysisResult, textBeforeCursor string) ([]protocol.CompletionItem, bool) {
	idx := strings.LastIndex(textBeforeCursor, "names.")
	if idx == -1 {
		return nil, false
	}
	if prev, _ := utf8.DecodeLastRuneInString(textBeforeCursor[:idx]); idx > 0 && isIdentRune(prev) {
		return nil, false
	}
	partial := textBeforeCursor[idx+len("names."):]
	if strings.ContainsFunc(partial, func(r rune) bool { return r == '.' || !isIdentRune(r) }) {
		return nil, false
	}
	if result == nil {
		return []protocol.CompletionItem{}, true
	}

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(result.Names))
	for _, e := range result.Names {
		hex := e.Color.Hex()
		items = append(items, protocol.CompletionItem{
			Label:  e.Name,
			Kind:   &kind,
			Detail: &hex,
		})
	}
	return items, true
}

// isValuePosition returns true if the cursor follows an "=" with nothing after it.
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	return strings.TrimSpace(trimmed[eqIdx+1:]) == ""
}

// valueCompletions returns function snippets and the names reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	fn := func(label, detail, snippet string) protocol.CompletionItem {
		return protocol.CompletionItem{
			Label:            label,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(detail),
			InsertText:       strPtr(snippet),
			InsertTextFormat: &snippetFormat,
		}
	}

	return []protocol.CompletionItem{
		fn("brighten", "brighten(color, amount)", "brighten(${1:color}, ${2:0.1})"),
		fn("darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"),
		fn("mix", "mix(a, b, weight)", "mix(${1:a}, ${2:b}, ${3:0.5})"),
		{
			Label:      "names",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("custom color name"),
			InsertText: strPtr("names."),
		},
	}
}

// determineBlockContext tracks brace nesting from the top of the file down
// to the cursor line.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			if parts := strings.Fields(line); len(parts) > 0 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}
		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}
	if len(stack) > 1 {
		return contextUnknown
	}
	switch stack[0] {
	case "server":
		return contextServer
	case "clustering":
		return contextClustering
	case "names":
		return contextNames
	default:
		return contextUnknown
	}
}

// attributeCompletions returns the block's attributes not yet defined.
func attributeCompletions(block string, lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range blockAttributes[block] {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}
	return items
}

// findDefinedAttributes returns the attribute names assigned between the
// enclosing block's opening brace and cursorLine.
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.ContainsAny(name, " {") {
				defined[name] = true
			}
		}
	}
	return defined
}

// topLevelCompletions returns snippets for the top-level blocks not yet present.
func topLevelCompletions(lines []string) []protocol.CompletionItem {
	present := make(map[string]bool)
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 1 && fields[1] == "{" {
			present[fields[0]] = true
		}
	}

	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		if present[name] {
			continue
		}
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}
	return items
}

func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	if !isConfigFile(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return complete(s.docs.Result(uri), content, params.Position), nil
}
