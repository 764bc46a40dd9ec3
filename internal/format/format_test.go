package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "already formatted stays same",
			input: `server {
  addr = ":8080"
}
`,
			expected: `server {
  addr = ":8080"
}
`,
		},
		{
			name:     "indentation and spacing normalized",
			input:    "server {\naddr=\":8080\"\n}\n",
			expected: "server {\n  addr = \":8080\"\n}\n",
		},
		{
			name:     "equals signs aligned",
			input:    "names {\n  brand = \"#FF5733\"\n  brand_light = brighten(names.brand, 0.1)\n}\n",
			expected: "names {\n  brand       = \"#FF5733\"\n  brand_light = brighten(names.brand, 0.1)\n}\n",
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "server {\n  addr = \":8080\"\n}\n\n\n\nnames {\n  brand = \"#FF5733\"\n}\n",
			expected: "server {\n  addr = \":8080\"\n}\n\nnames {\n  brand = \"#FF5733\"\n}\n",
		},
		{
			name:     "single blank line preserved",
			input:    "server {\n  addr = \":8080\"\n}\n\nnames {\n  brand = \"#FF5733\"\n}\n",
			expected: "server {\n  addr = \":8080\"\n}\n\nnames {\n  brand = \"#FF5733\"\n}\n",
		},
		{
			name:     "blank line after opening brace removed",
			input:    "names {\n\n  brand = \"#FF5733\"\n}",
			expected: "names {\n  brand = \"#FF5733\"\n}",
		},
		{
			name:     "blank line before closing brace removed",
			input:    "names {\n  brand = \"#FF5733\"\n\n}",
			expected: "names {\n  brand = \"#FF5733\"\n}",
		},
		{
			name:     "blank lines after and before braces both removed",
			input:    "clustering {\n\n  colors = 6\n\n}",
			expected: "clustering {\n  colors = 6\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	input := `server { addr = ":8080"`
	if _, err := Format(input); err != nil {
		t.Errorf("Format() on incomplete HCL should not error, got: %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipetka.hcl")
	if err := os.WriteFile(path, []byte("server {\naddr=\":8080\"\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := File(path, false)
	if err != nil || !changed {
		t.Fatalf("File(check) = %v, %v; want true, nil", changed, err)
	}
	if b, _ := os.ReadFile(path); string(b) != "server {\naddr=\":8080\"\n}\n" {
		t.Error("File without write modified the file")
	}

	changed, err = File(path, true)
	if err != nil || !changed {
		t.Fatalf("File(write) = %v, %v; want true, nil", changed, err)
	}
	if b, _ := os.ReadFile(path); string(b) != "server {\n  addr = \":8080\"\n}\n" {
		t.Errorf("file content = %q", b)
	}

	changed, err = File(path, true)
	if err != nil || changed {
		t.Errorf("second File(write) = %v, %v; want false, nil", changed, err)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.hcl"), false); err == nil {
		t.Error("expected error for missing file")
	}
}
