package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mweigel/pysize/pkg/manifest"
)

// fakeEnv is an in-memory stand-in for a virtual environment: a plain
// directory whose Install writes a payload file of a fixed size.
type fakeEnv struct {
	dir     string
	payload int64
	fail    bool
}

func (e *fakeEnv) Path() string { return e.dir }

func (e *fakeEnv) Install(ctx context.Context, spec manifest.Specifier) error {
	if e.fail {
		return fmt.Errorf("install %s: exit status 1", spec.Package)
	}
	return os.WriteFile(filepath.Join(e.dir, "payload"), make([]byte, e.payload), 0644)
}

func (e *fakeEnv) Remove() error { return os.RemoveAll(e.dir) }

type fakeProvisioner struct {
	t        *testing.T
	base     string
	payloads map[string]int64
	failFor  map[string]bool
	created  []string
}

func newFakeProvisioner(t *testing.T, payloads map[string]int64) *fakeProvisioner {
	return &fakeProvisioner{t: t, base: t.TempDir(), payloads: payloads}
}

func (p *fakeProvisioner) Provision(ctx context.Context, pkg string) (Environment, error) {
	dir, err := os.MkdirTemp(p.base, "env-*")
	if err != nil {
		return nil, err
	}
	// Pre-existing base files cancel out in the before/after diff.
	if err := os.WriteFile(filepath.Join(dir, "base"), make([]byte, 64), 0644); err != nil {
		return nil, err
	}
	p.created = append(p.created, dir)
	return &fakeEnv{dir: dir, payload: p.payloads[pkg], fail: p.failFor[pkg]}, nil
}

func (p *fakeProvisioner) assertAllRemoved() {
	p.t.Helper()
	for _, dir := range p.created {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			p.t.Errorf("environment %s not removed", dir)
		}
	}
}

func specs(pkgs ...string) []manifest.Specifier {
	out := make([]manifest.Specifier, len(pkgs))
	for i, p := range pkgs {
		out[i] = manifest.Specifier{Package: p}
	}
	return out
}

func TestProber_Run(t *testing.T) {
	prov := newFakeProvisioner(t, map[string]int64{
		"small":  100,
		"large":  5000,
		"medium": 700,
	})
	prober := New(prov)

	results, err := prober.Run(context.Background(), specs("small", "large", "medium"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []Measurement{
		{Bytes: 5000, Package: "large"},
		{Bytes: 700, Package: "medium"},
		{Bytes: 100, Package: "small"},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %+v, want %+v", i, results[i], want[i])
		}
	}

	prov.assertAllRemoved()
}

func TestProber_Run_StableTies(t *testing.T) {
	prov := newFakeProvisioner(t, map[string]int64{
		"a": 100, "b": 100, "c": 100,
	})
	prober := New(prov)

	results, err := prober.Run(context.Background(), specs("a", "b", "c"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Equal sizes keep insertion order.
	for i, pkg := range []string{"a", "b", "c"} {
		if results[i].Package != pkg {
			t.Errorf("results[%d].Package = %q, want %q", i, results[i].Package, pkg)
		}
	}
}

func TestProber_Run_InstallFailureIsFatal(t *testing.T) {
	prov := newFakeProvisioner(t, map[string]int64{"ok": 100, "boom": 200})
	prov.failFor = map[string]bool{"boom": true}
	prober := New(prov)

	results, err := prober.Run(context.Background(), specs("ok", "boom", "never"), Options{})
	if err == nil {
		t.Fatal("Run error = nil, want error")
	}
	if results != nil {
		t.Errorf("results = %v, want nil (no partial result)", results)
	}

	// Only the two attempted environments exist, both removed.
	if len(prov.created) != 2 {
		t.Errorf("created %d environments, want 2", len(prov.created))
	}
	prov.assertAllRemoved()
}

func TestProber_Run_ProgressOrder(t *testing.T) {
	prov := newFakeProvisioner(t, map[string]int64{"x": 1, "y": 2})
	prober := New(prov)

	var seen []string
	_, err := prober.Run(context.Background(), specs("x", "y"), Options{
		Progress: func(pkg string) { seen = append(seen, pkg) },
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(seen) != 2 || seen[0] != "x" || seen[1] != "y" {
		t.Errorf("progress order = %v, want [x y]", seen)
	}
}

func TestProber_Run_Empty(t *testing.T) {
	prober := New(newFakeProvisioner(t, nil))
	results, err := prober.Run(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}
