// Package manifest extracts package specifiers from Python dependency
// manifests.
//
// Two formats are supported, dispatched by file extension:
//   - requirements.txt style pinned lists (.txt)
//   - pyproject.toml project manifests (.toml)
//
// Requirements files yield an ordered sequence with duplicates preserved;
// pyproject manifests yield a deduplicated set.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/mweigel/pysize/pkg/errors"
)

// Specifier identifies one package to measure: a name plus optional
// version constraint (e.g. "requests==2.31.0"), and an optional
// alternate package index to install it from.
type Specifier struct {
	Package string // name plus optional version constraint
	Index   string // alternate package index URL, empty for the default index
}

// String returns the display form of the specifier.
func (s Specifier) String() string {
	return s.Package
}

// Parser reads package specifiers from a dependency manifest file.
type Parser interface {
	// Parse reads the manifest at path and returns its specifiers.
	Parse(path string) ([]Specifier, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier.
	Type() string
}

// parsers lists the known manifest formats in detection order.
var parsers = []Parser{
	&Requirements{},
	&Pyproject{},
}

// Detect finds a parser that supports the given file path.
// Returns an UNSUPPORTED error if no parser matches.
func Detect(path string) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported,
		"unsupported manifest %q (supported: %s)", name, strings.Join(Types(), ", "))
}

// Extract detects the manifest format of path and parses it.
func Extract(path string) ([]Specifier, error) {
	p, err := Detect(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}

// Types returns the manifest type identifiers of all known parsers.
func Types() []string {
	types := make([]string, len(parsers))
	for i, p := range parsers {
		types[i] = p.Type()
	}
	return types
}
