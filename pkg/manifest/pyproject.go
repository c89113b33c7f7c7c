package manifest

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mweigel/pysize/pkg/errors"
)

// Pyproject parses pyproject.toml project manifests.
//
// It collects PEP 621 dependency lists (project.dependencies,
// project.dev-dependencies, project.test-dependencies and every group
// under project.optional-dependencies) together with the dependency
// names declared in the tool.poetry tables. The union is deduplicated
// and returned in sorted order so runs are deterministic.
type Pyproject struct{}

func (p *Pyproject) Type() string { return "pyproject.toml" }

func (p *Pyproject) Supports(name string) bool {
	return strings.HasSuffix(name, ".toml")
}

type pyprojectFile struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		DevDependencies      []string            `toml:"dev-dependencies"`
		TestDependencies     []string            `toml:"test-dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies     map[string]any `toml:"dependencies"`
			DevDependencies  map[string]any `toml:"dev-dependencies"`
			TestDependencies map[string]any `toml:"test-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (p *Pyproject) Parse(path string) ([]Specifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, name := range names {
			// Poetry embeds the interpreter version constraint as a
			// pseudo-dependency named "python"; it is not installable.
			if name == "python" || seen[name] {
				continue
			}
			seen[name] = true
		}
	}

	add(file.Project.Dependencies...)
	add(file.Project.DevDependencies...)
	add(file.Project.TestDependencies...)
	for _, group := range file.Project.OptionalDependencies {
		add(group...)
	}
	for name := range file.Tool.Poetry.Dependencies {
		add(name)
	}
	for name := range file.Tool.Poetry.DevDependencies {
		add(name)
	}
	for name := range file.Tool.Poetry.TestDependencies {
		add(name)
	}

	specs := make([]Specifier, 0, len(seen))
	for name := range seen {
		specs = append(specs, Specifier{Package: name})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Package < specs[j].Package })

	return specs, nil
}
