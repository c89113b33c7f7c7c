// Package venv provisions throwaway Python virtual environments.
//
// Each environment is a self-contained installation root with its own
// pip executable, created with "python -m venv --symlinks" and removed
// after use. Environments are never shared: one environment serves
// exactly one install.
package venv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/mweigel/pysize/pkg/errors"
	"github.com/mweigel/pysize/pkg/manifest"
)

// Env is one throwaway virtual environment on disk.
type Env struct {
	root string
	pip  string
}

// Path returns the environment root directory.
func (e *Env) Path() string { return e.root }

// Install runs "pip install" inside the environment for the given
// specifier, letting pip resolve the package's transitive
// dependencies. If the specifier carries an alternate index, it is
// passed with -i. There is no timeout: an unresponsive index stalls
// the call until the context is cancelled.
func (e *Env) Install(ctx context.Context, spec manifest.Specifier) error {
	args := []string{"install", spec.Package}
	if spec.Index != "" {
		args = append(args, "-i", spec.Index)
	}
	cmd := exec.CommandContext(ctx, e.pip, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrap(errors.ErrCodeInstallFailed, err,
			"pip install %s: %s", spec.Package, strings.TrimSpace(string(out)))
	}
	return nil
}

// Remove deletes the environment from disk.
func (e *Env) Remove() error {
	return os.RemoveAll(e.root)
}

// Manager creates virtual environments under a caller-owned scratch
// directory.
type Manager struct {
	python string
	dir    string
}

// NewManager returns a Manager that provisions environments with the
// given Python interpreter under dir.
func NewManager(python, dir string) *Manager {
	return &Manager{python: python, dir: dir}
}

// Provision creates a fresh virtual environment named after pkg.
// Symlink-based provisioning keeps creation cheap; the linked base
// installation cancels out in a before/after size diff.
func (m *Manager) Provision(ctx context.Context, pkg string) (*Env, error) {
	root := filepath.Join(m.dir, envName(pkg))
	cmd := exec.CommandContext(ctx, m.python, "-m", "venv", "--symlinks", root)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProvisionFailed, err,
			"create venv %s: %s", root, strings.TrimSpace(string(out)))
	}
	return &Env{root: root, pip: pipPath(root)}, nil
}

// envName builds a unique directory name for a package's environment.
// The uuid suffix keeps repeated occurrences of the same specifier
// from colliding.
func envName(pkg string) string {
	return "venv-" + sanitize(pkg) + "-" + uuid.NewString()[:8]
}

// sanitize maps a specifier to a filesystem-safe directory fragment.
func sanitize(pkg string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, pkg)
}

// pipPath returns the pip executable inside a venv root.
func pipPath(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Scripts", "pip.exe")
	}
	return filepath.Join(root, "bin", "pip")
}
