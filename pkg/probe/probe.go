// Package probe measures the installed disk footprint of packages.
//
// For each specifier a fresh isolated environment is provisioned, its
// size recorded, the package installed, the size recorded again, and
// the environment torn down. The delta isolates the net bytes the one
// package (with its transitive dependencies) materialized on disk.
package probe

import (
	"context"
	"sort"

	"github.com/mweigel/pysize/pkg/manifest"
)

// Measurement is the net disk footprint of one installed package.
type Measurement struct {
	Bytes   int64  // bytes added by the install, including dependencies
	Package string // specifier display string
}

// Environment is one isolated install target.
type Environment interface {
	// Path returns the environment root on disk.
	Path() string
	// Install installs one specifier into the environment.
	Install(ctx context.Context, spec manifest.Specifier) error
	// Remove deletes the environment from disk.
	Remove() error
}

// Provisioner creates isolated environments. venv.Manager is the
// production implementation.
type Provisioner interface {
	Provision(ctx context.Context, pkg string) (Environment, error)
}

// Options configures a probe run.
type Options struct {
	// Logger receives per-step progress messages. Optional.
	Logger func(format string, args ...any)
	// Progress is called once per specifier before it is probed. Optional.
	Progress func(pkg string)
}

// Prober measures packages one at a time, each in its own environment.
type Prober struct {
	prov Provisioner
}

// New returns a Prober backed by the given provisioner.
func New(prov Provisioner) *Prober {
	return &Prober{prov: prov}
}

// Run probes each specifier in order and returns the measurements
// sorted by size descending, stable for equal sizes. Probing is
// strictly sequential: an environment is provisioned, measured,
// installed into, measured again and removed before the next
// specifier starts. Any failure aborts the run with no partial
// result.
func (p *Prober) Run(ctx context.Context, specs []manifest.Specifier, opts Options) ([]Measurement, error) {
	logf := opts.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	results := make([]Measurement, 0, len(specs))
	for _, spec := range specs {
		if opts.Progress != nil {
			opts.Progress(spec.Package)
		}
		m, err := p.probeOne(ctx, spec, logf)
		if err != nil {
			return nil, err
		}
		logf("size of %s: %.1f MB", spec.Package, float64(m.Bytes)/1024/1024)
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Bytes > results[j].Bytes
	})
	return results, nil
}

// probeOne measures one specifier in a fresh environment. The
// environment is removed on every exit path, including install and
// measurement failures.
func (p *Prober) probeOne(ctx context.Context, spec manifest.Specifier, logf func(string, ...any)) (Measurement, error) {
	env, err := p.prov.Provision(ctx, spec.Package)
	if err != nil {
		return Measurement{}, err
	}
	logf("created venv %s", env.Path())
	defer func() {
		if rerr := env.Remove(); rerr != nil {
			logf("remove %s: %v", env.Path(), rerr)
		}
	}()

	before, err := DirSize(env.Path())
	if err != nil {
		return Measurement{}, err
	}

	logf("installing %s", spec)
	if err := env.Install(ctx, spec); err != nil {
		return Measurement{}, err
	}

	after, err := DirSize(env.Path())
	if err != nil {
		return Measurement{}, err
	}

	return Measurement{Bytes: after - before, Package: spec.String()}, nil
}
