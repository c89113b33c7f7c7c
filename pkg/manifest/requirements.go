package manifest

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mweigel/pysize/pkg/errors"
)

// indexRE matches pip index override option lines ("-i URL" or
// "--index-url URL"). The URL is captured in the second group.
var indexRE = regexp.MustCompile(`^(-i|--index-url)\s+(.+)$`)

// Requirements parses requirements.txt style pinned dependency lists.
//
// Blank lines, comments and option lines are skipped, with one
// exception: an index option line directly above a dependency attaches
// its URL to that dependency. Each dependency line is reduced to its
// first whitespace-delimited token, which drops continuation
// backslashes and hash-pin annotations. Order and duplicates are
// preserved.
type Requirements struct{}

func (r *Requirements) Type() string { return "requirements.txt" }

func (r *Requirements) Supports(name string) bool {
	return strings.HasSuffix(name, ".txt")
}

func (r *Requirements) Parse(path string) ([]Specifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return parseRequirements(f)
}

func parseRequirements(r io.Reader) ([]Specifier, error) {
	var specs []Specifier

	// index URL from the line directly above, if it was an index option
	pendingIndex := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			pendingIndex = ""
			continue
		}
		if strings.HasPrefix(line, "-") {
			if m := indexRE.FindStringSubmatch(line); m != nil {
				pendingIndex = strings.TrimSpace(m[2])
			} else {
				pendingIndex = ""
			}
			continue
		}

		// "package==1.0.0 \" -> "package==1.0.0"
		specs = append(specs, Specifier{
			Package: strings.Fields(line)[0],
			Index:   pendingIndex,
		})
		pendingIndex = ""
	}

	return specs, scanner.Err()
}
