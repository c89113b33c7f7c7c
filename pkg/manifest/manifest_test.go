package manifest

import (
	"testing"

	"github.com/mweigel/pysize/pkg/errors"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
	}{
		{"requirements.txt", "requirements.txt"},
		{"sub/dir/requirements-dev.txt", "requirements.txt"},
		{"pyproject.toml", "pyproject.toml"},
		{"/abs/path/pyproject.toml", "pyproject.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := Detect(tt.path)
			if err != nil {
				t.Fatalf("Detect(%q) error = %v", tt.path, err)
			}
			if p.Type() != tt.wantType {
				t.Errorf("Detect(%q).Type() = %q, want %q", tt.path, p.Type(), tt.wantType)
			}
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	for _, path := range []string{"deps.json", "Pipfile", "setup.py"} {
		t.Run(path, func(t *testing.T) {
			_, err := Detect(path)
			if err == nil {
				t.Fatalf("Detect(%q) error = nil, want error", path)
			}
			if !errors.Is(err, errors.ErrCodeUnsupported) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupported)
			}
		})
	}
}

func TestSpecifier_String(t *testing.T) {
	s := Specifier{Package: "foo==1.0.0", Index: "https://example.org/simple"}
	if got := s.String(); got != "foo==1.0.0" {
		t.Errorf("String() = %q, want %q", got, "foo==1.0.0")
	}
}
