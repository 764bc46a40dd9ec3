package lsp

import (
	"slices"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// Semantic token types, by legend index.
var semanticTokenTypes = []string{
	"keyword",   // block names
	"property",  // attribute names
	"namespace", // the names namespace
	"string",    // color literals
	"function",  // brighten(), darken(), mix()
	"number",
}

var semanticTokenModifiers = []string{
	"declaration",
}

const (
	tokKeyword uint32 = iota
	tokProperty
	tokNamespace
	tokString
	tokFunction
	tokNumber
)

const modDeclaration uint32 = 1

func semanticLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     semanticTokenTypes,
		TokenModifiers: semanticTokenModifiers,
	}
}

// SemanticToken is one token before delta encoding.
type SemanticToken struct {
	Line      uint32 // 0-based
	StartChar uint32 // 0-based
	Length    uint32
	Type      uint32
	Modifiers uint32
}

func tokenAt(r hcl.Range, length int, typ, mods uint32) SemanticToken {
	start := hclPosToLSP(r.Start)
	return SemanticToken{
		Line:      start.Line,
		StartChar: start.Character,
		Length:    uint32(length),
		Type:      typ,
		Modifiers: mods,
	}
}

// encodeTokens converts tokens to the LSP wire format: five integers per
// token, with line and start delta-encoded against the previous token.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	slices.SortFunc(tokens, func(a, b SemanticToken) int {
		if a.Line != b.Line {
			return int(a.Line) - int(b.Line)
		}
		return int(a.StartChar) - int(b.StartChar)
	})

	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}
		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)
		prevLine, prevChar = tok.Line, tok.StartChar
	}
	return data
}

// semanticTokensFull tokenizes a whole config document. Documents that do
// not parse yield no tokens.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}
	return encodeTokens(extractTokensFromBody(body, nil))
}

func extractTokensFromBody(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for _, block := range body.Blocks {
		tokens = append(tokens, tokenAt(block.TypeRange, utf16Len(block.Type), tokKeyword, 0))
		tokens = extractTokensFromBody(block.Body, tokens)
	}
	for name, attr := range body.Attributes {
		tokens = append(tokens, tokenAt(attr.NameRange, utf16Len(name), tokProperty, modDeclaration))
		tokens = extractTokensFromExpr(attr.Expr, tokens)
	}
	return tokens
}

func extractTokensFromExpr(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return extractTokensFromLiteral(e, tokens)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			tokens = extractTokensFromExpr(part, tokens)
		}
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			tokens = extractTokensFromExpr(item, tokens)
		}
	case *hclsyntax.ScopeTraversalExpr:
		return extractTokensFromTraversal(e, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = append(tokens, tokenAt(e.NameRange, utf16Len(e.Name), tokFunction, 0))
		for _, arg := range e.Args {
			tokens = extractTokensFromExpr(arg, tokens)
		}
	}
	return tokens
}

// extractTokensFromLiteral marks numbers and strings that parse as colors.
func extractTokensFromLiteral(expr *hclsyntax.LiteralValueExpr, tokens []SemanticToken) []SemanticToken {
	r := expr.SrcRange
	if r.Start.Line != r.End.Line {
		return tokens
	}
	switch expr.Val.Type() {
	case cty.String:
		if _, ok := color.ParseColor(expr.Val.AsString()); ok {
			tokens = append(tokens, tokenAt(r, r.End.Column-r.Start.Column, tokString, 0))
		}
	case cty.Number:
		tokens = append(tokens, tokenAt(r, r.End.Column-r.Start.Column, tokNumber, 0))
	}
	return tokens
}

// extractTokensFromTraversal marks names.<name> references.
func extractTokensFromTraversal(expr *hclsyntax.ScopeTraversalExpr, tokens []SemanticToken) []SemanticToken {
	if len(expr.Traversal) == 0 {
		return tokens
	}
	root, ok := expr.Traversal[0].(hcl.TraverseRoot)
	if !ok || root.Name != "names" {
		return tokens
	}

	tokens = append(tokens, tokenAt(root.SrcRange, utf16Len(root.Name), tokNamespace, 0))
	for _, step := range expr.Traversal[1:] {
		if attr, ok := step.(hcl.TraverseAttr); ok {
			// SrcRange of an attribute step includes the leading dot.
			r := attr.SrcRange
			r.Start.Column = r.End.Column - utf8.RuneCountInString(attr.Name)
			tokens = append(tokens, tokenAt(r, utf16Len(attr.Name), tokProperty, 0))
		}
	}
	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok || !isConfigFile(uri) {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
