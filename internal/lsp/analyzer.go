package lsp

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/config"
	"github.com/pipetka/pipetka/internal/names"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "pipetka"

// topLevelBlocks are the blocks a pipetka.hcl file may contain.
var topLevelBlocks = []string{"server", "clustering", "names"}

// blockAttributes lists the attributes of the fixed-schema blocks.
var blockAttributes = map[string][]string{
	"server":     {"addr", "allowed_origins"},
	"clustering": {"colors", "max_iterations", "tolerance", "sample_step"},
}

// AnalysisResult holds everything derived from one document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	// Names are the custom names of a config file, in source order.
	Names   []names.Entry
	Symbols map[string]protocol.Range // "names.brand" -> definition range
	Colors  []ColorLocation
	// SyntaxError is set when the document did not parse.
	SyntaxError bool
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	IsRef bool // true for names.x references and function calls
}

// Dictionary returns the CSS colors extended with the document's names.
func (r *AnalysisResult) Dictionary() names.Dictionary {
	return names.CSS().With(r.Names...)
}

// isConfigFile reports whether a document is analysed as pipetka.hcl
// rather than scanned for color literals.
func isConfigFile(uri string) bool {
	return strings.HasSuffix(uri, ".hcl")
}

// Analyze produces diagnostics, symbols and color locations for a document.
// Config files are parsed as HCL; any other text is scanned for hex,
// rgb() and hsl() literals.
func Analyze(filename, content string) *AnalysisResult {
	if isConfigFile(filename) {
		return analyzeConfig(filename, content)
	}
	return &AnalysisResult{
		Symbols: map[string]protocol.Range{},
		Colors:  scanLiterals(content),
	}
}

var literalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#[0-9A-Fa-f]{6}\b`),
	regexp.MustCompile(`(?i)rgba?\([^()\n]*\)`),
	regexp.MustCompile(`(?i)hsla?\([^()\n]*\)`),
}

// scanLiterals finds every parseable color literal, line by line.
func scanLiterals(content string) []ColorLocation {
	var out []ColorLocation
	for i, line := range splitLines(content) {
		for _, re := range literalPatterns {
			for _, m := range re.FindAllStringIndex(line, -1) {
				c, ok := color.ParseColor(line[m[0]:m[1]])
				if !ok {
					continue
				}
				out = append(out, ColorLocation{
					Range: protocol.Range{
						Start: protocol.Position{Line: uint32(i), Character: utf16Column(line, m[0])},
						End:   protocol.Position{Line: uint32(i), Character: utf16Column(line, m[1])},
					},
					Color: c,
				})
			}
		}
	}
	slices.SortFunc(out, func(a, b ColorLocation) int {
		if a.Range.Start.Line != b.Range.Start.Line {
			return int(a.Range.Start.Line) - int(b.Range.Start.Line)
		}
		return int(a.Range.Start.Character) - int(b.Range.Start.Character)
	})
	return out
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based. HCL counts columns
// in characters, which matches UTF-16 units outside the astral planes.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// analyzeConfig collects all errors in a pipetka.hcl document rather than
// stopping at the first.
func analyzeConfig(filename, content string) *AnalysisResult {
	result := &AnalysisResult{Symbols: make(map[string]protocol.Range)}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		result.SyntaxError = true
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	for _, attr := range body.Attributes {
		result.addError(attr.SrcRange, fmt.Sprintf("unexpected attribute %q at top level", attr.Name))
	}

	seen := make(map[string]bool)
	for _, block := range body.Blocks {
		if seen[block.Type] {
			result.addError(block.DefRange(), fmt.Sprintf("duplicate %s block", block.Type))
			continue
		}
		seen[block.Type] = true

		switch block.Type {
		case "names":
			result.analyzeNames(block.Body)
		case "server", "clustering":
			result.analyzeFixedBlock(block)
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unknown block %q (valid: %s)", block.Type, strings.Join(topLevelBlocks, ", ")))
		}
	}

	// Range and type checks live in the loader; only report them when the
	// structural walk found nothing.
	if len(result.Diagnostics) == 0 {
		if _, err := config.Parse([]byte(content), filename); err != nil {
			result.addError(hcl.Range{Start: hcl.Pos{Line: 1, Column: 1}, End: hcl.Pos{Line: 1, Column: 1}}, err.Error())
		}
	}
	return result
}

// analyzeNames evaluates names in source order so later entries can
// reference earlier ones.
func (r *AnalysisResult) analyzeNames(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), "nested blocks are not allowed in names")
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		symbol := "names." + attr.Name
		r.Symbols[symbol] = hclRangeToLSP(attr.SrcRange)

		val, diags := attr.Expr.Value(config.EvalContext(r.Names))
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", symbol, diags.Error()))
			continue
		}
		if val.IsNull() || val.Type() != cty.String {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: expected a color string, got %s", symbol, val.Type().FriendlyName()))
			continue
		}
		c, ok := color.ParseColor(val.AsString())
		if !ok {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: invalid color %q", symbol, val.AsString()))
			continue
		}

		r.Names = append(r.Names, names.Entry{Name: attr.Name, Color: c})
		r.Colors = append(r.Colors, ColorLocation{
			Range: hclRangeToLSP(attr.Expr.Range()),
			Color: c,
			IsRef: isComputedExpr(attr.Expr),
		})
	}
}

// analyzeFixedBlock flags attributes outside the block's schema.
func (r *AnalysisResult) analyzeFixedBlock(block *hclsyntax.Block) {
	valid := blockAttributes[block.Type]
	for _, nested := range block.Body.Blocks {
		r.addError(nested.DefRange(), fmt.Sprintf("unexpected block %q in %s", nested.Type, block.Type))
	}
	for name, attr := range block.Body.Attributes {
		if !slices.Contains(valid, name) {
			r.addWarning(attr.NameRange, fmt.Sprintf("unknown attribute %s.%s (valid: %s)", block.Type, name, strings.Join(valid, ", ")))
		}
	}
}

// isComputedExpr reports whether expr is something other than a literal,
// e.g. names.base or brighten(...).
func isComputedExpr(expr hclsyntax.Expression) bool {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		return !e.IsStringLiteral()
	case *hclsyntax.LiteralValueExpr:
		return false
	default:
		return true
	}
}

func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}
	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}
	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}
	return diag
}

func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
