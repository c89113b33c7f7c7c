package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mweigel/pysize/pkg/errors"
)

func TestPyproject_Supports(t *testing.T) {
	parser := &Pyproject{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"pyproject.toml", true},
		{"other.toml", true},
		{"requirements.txt", false},
		{"poetry.lock", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestPyproject_Parse(t *testing.T) {
	content := `[project]
dependencies = ["requests>=2.28", "click==8.1.0"]
dev-dependencies = ["pytest", "requests>=2.28"]
test-dependencies = ["coverage"]

[project.optional-dependencies]
docs = ["sphinx"]
lint = ["ruff", "pytest"]
`
	specs := parsePyprojectString(t, content)

	want := []Specifier{
		{Package: "click==8.1.0"},
		{Package: "coverage"},
		{Package: "pytest"},
		{Package: "requests>=2.28"},
		{Package: "ruff"},
		{Package: "sphinx"},
	}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("Parse() = %v, want %v", specs, want)
	}
}

func TestPyproject_Parse_PythonExcluded(t *testing.T) {
	content := `[project]
dependencies = ["a", "python"]

[tool.poetry.dependencies]
python = "^3.10"
b = "*"
`
	specs := parsePyprojectString(t, content)

	want := []Specifier{
		{Package: "a"},
		{Package: "b"},
	}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("Parse() = %v, want %v", specs, want)
	}
}

func TestPyproject_Parse_PoetryTables(t *testing.T) {
	content := `[tool.poetry.dependencies]
python = "^3.11"
requests = { version = ">=2.28", extras = ["socks"] }

[tool.poetry.dev-dependencies]
pytest = "*"

[tool.poetry.test-dependencies]
coverage = "*"
`
	specs := parsePyprojectString(t, content)

	want := []Specifier{
		{Package: "coverage"},
		{Package: "pytest"},
		{Package: "requests"},
	}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("Parse() = %v, want %v", specs, want)
	}
}

func TestPyproject_Parse_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte("[project\ndependencies = ["), 0644); err != nil {
		t.Fatal(err)
	}

	parser := &Pyproject{}
	_, err := parser.Parse(path)
	if err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidManifest)
	}
}

func TestPyproject_Parse_Empty(t *testing.T) {
	specs := parsePyprojectString(t, "[build-system]\nrequires = [\"setuptools\"]\n")
	if len(specs) != 0 {
		t.Errorf("Parse() = %v, want no specifiers", specs)
	}
}

func parsePyprojectString(t *testing.T, content string) []Specifier {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	parser := &Pyproject{}
	specs, err := parser.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return specs
}
