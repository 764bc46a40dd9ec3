package lsp

import "unicode/utf16"

// LSP positions count UTF-16 code units within a line; Go strings index bytes.

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// utf16Column converts a byte offset within line to an LSP character.
func utf16Column(line string, offset int) uint32 {
	return uint32(utf16Len(line[:min(offset, len(line))]))
}

// byteOffset converts an LSP character within line to a byte offset,
// clamped to the line length. A character inside a surrogate pair maps to
// the start of its rune.
func byteOffset(line string, character uint32) int {
	units := 0
	for i, r := range line {
		n := utf16.RuneLen(r)
		if units+n > int(character) {
			return i
		}
		units += n
	}
	return len(line)
}
