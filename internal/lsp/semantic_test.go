package lsp

import (
	"reflect"
	"testing"
)

func TestEncodeTokens_Empty(t *testing.T) {
	result := encodeTokens([]SemanticToken{})
	expected := []uint32{}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens([]) = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SameLine(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 8, Length: 4, Type: tokProperty, Modifiers: modDeclaration},
		{Line: 0, StartChar: 0, Length: 5, Type: tokKeyword},
	}
	result := encodeTokens(tokens)
	// Sorted by position; the second token's start is relative to the first.
	expected := []uint32{0, 0, 5, tokKeyword, 0, 0, 8, 4, tokProperty, modDeclaration}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_DifferentLines(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 5, Type: tokKeyword},
		{Line: 2, StartChar: 2, Length: 4, Type: tokProperty},
	}
	result := encodeTokens(tokens)
	expected := []uint32{0, 0, 5, tokKeyword, 0, 2, 2, 4, tokProperty, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

// tokenTypes returns the type of each encoded token.
func tokenTypes(data []uint32) []uint32 {
	var out []uint32
	for i := 3; i < len(data); i += 5 {
		out = append(out, data[i])
	}
	return out
}

func TestSemanticTokensFull(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{
			name:    "literal color",
			content: "names {\n  a = \"#FF0000\"\n}\n",
			want:    []uint32{tokKeyword, tokProperty, tokString},
		},
		{
			name:    "number",
			content: "clustering {\n  colors = 8\n}\n",
			want:    []uint32{tokKeyword, tokProperty, tokNumber},
		},
		{
			name:    "function and reference",
			content: "names {\n  b = darken(names.a, 0.1)\n}\n",
			want:    []uint32{tokKeyword, tokProperty, tokFunction, tokNamespace, tokProperty, tokNumber},
		},
		{
			name:    "non-color string",
			content: "server {\n  addr = \":8080\"\n}\n",
			want:    []uint32{tokKeyword, tokProperty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenTypes(semanticTokensFull(tt.content))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("token types = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSemanticTokensFull_Positions(t *testing.T) {
	data := semanticTokensFull("names {\n  b = darken(names.a, 0.1)\n}\n")
	// keyword, property, function, namespace, property, number
	want := []uint32{
		0, 0, 5, tokKeyword, 0,
		1, 2, 1, tokProperty, modDeclaration,
		0, 4, 6, tokFunction, 0,
		0, 7, 5, tokNamespace, 0,
		0, 6, 1, tokProperty, 0,
		0, 3, 3, tokNumber, 0,
	}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("semanticTokensFull() = %v, want %v", data, want)
	}
}

func TestSemanticTokensFull_ParseError(t *testing.T) {
	if got := semanticTokensFull("names {\n  a = \n"); len(got) != 0 {
		t.Errorf("expected no tokens for invalid document, got %v", got)
	}
}
