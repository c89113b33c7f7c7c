package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/mweigel/pysize/internal/config"
	"github.com/mweigel/pysize/pkg/manifest"
	"github.com/mweigel/pysize/pkg/probe"
	"github.com/mweigel/pysize/pkg/report"
	"github.com/mweigel/pysize/pkg/venv"
)

const configDefaultHint = config.DefaultPath

// measureOpts holds the command-line flags for the measurement run.
type measureOpts struct {
	requirements string // input manifest path
	output       string // output report path
	python       string // interpreter override, empty for config value
	configPath   string // config file override, empty for default search
}

// venvProvisioner adapts venv.Manager to the probe.Provisioner
// interface.
type venvProvisioner struct {
	mgr *venv.Manager
}

func (p venvProvisioner) Provision(ctx context.Context, pkg string) (probe.Environment, error) {
	return p.mgr.Provision(ctx, pkg)
}

// runMeasure extracts the manifest, probes each package sequentially
// and writes the console summary plus the CSV report. Any extraction,
// provisioning or install failure aborts the run with no partial
// report.
func runMeasure(ctx context.Context, opts measureOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.python != "" {
		cfg.Python = opts.python
	}

	specs, err := manifest.Extract(opts.requirements)
	if err != nil {
		return err
	}
	logger.Infof("Extracted %d packages from %s", len(specs), opts.requirements)

	if len(specs) == 0 {
		logger.Warn("Nothing to measure")
		return report.WriteFile(opts.output, nil, cfg.BarResolutionMB)
	}

	// Scratch dir owning all environments for this run. Environments
	// are removed per package; this catches leftovers on early exits.
	scratch, err := os.MkdirTemp("", "pysize-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	verbose := logger.GetLevel() <= charmlog.DebugLevel
	bar := newBar(len(specs), verbose)

	prober := probe.New(venvProvisioner{venv.NewManager(cfg.Python, scratch)})
	prog := newProgress(logger)

	results, err := prober.Run(ctx, specs, probe.Options{
		Logger: func(format string, args ...any) {
			logger.Debugf(format, args...)
		},
		Progress: func(pkg string) {
			if bar == nil {
				return
			}
			bar.Describe("measuring " + pkg)
			_ = bar.Add(1)
		},
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Measured %d packages", len(results)))

	if err := report.WriteFile(opts.output, results, cfg.BarResolutionMB); err != nil {
		return err
	}

	fmt.Println(styleTitle.Render("Installed package sizes"))
	report.Render(os.Stdout, results, cfg.NameWidth)
	printSuccess("Wrote report to %s", opts.output)

	return nil
}

// newBar creates the per-package progress bar shown on stderr. Verbose
// runs log every probe step instead, so the bar is omitted to keep the
// output readable.
func newBar(n int, verbose bool) *progressbar.ProgressBar {
	if verbose {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("measuring"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
