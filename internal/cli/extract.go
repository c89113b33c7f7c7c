package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mweigel/pysize/pkg/manifest"
)

// newExtractCmd creates the extract command, which runs only the
// manifest extraction and prints the specifiers without provisioning
// or installing anything.
func newExtractCmd() *cobra.Command {
	var (
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "List the packages a manifest would measure",
		Long: `List the packages extracted from a manifest without installing them.

Useful for checking what a measurement run would cover, or for piping
the dependency list into other tooling with --json.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			req, err := c.Flags().GetString("requirements")
			if err != nil {
				return err
			}
			return runExtract(c.Context(), req, output, asJSON)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write specifiers as JSON")

	return cmd
}

// specJSON is the JSON shape of one extracted specifier.
type specJSON struct {
	Package string `json:"package"`
	Index   string `json:"index,omitempty"`
}

func runExtract(ctx context.Context, path, output string, asJSON bool) error {
	logger := loggerFromContext(ctx)

	specs, err := manifest.Extract(path)
	if err != nil {
		return err
	}
	logger.Infof("Extracted %d packages from %s", len(specs), path)

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if asJSON {
		return writeSpecsJSON(out, specs)
	}
	for _, s := range specs {
		if s.Index != "" {
			fmt.Fprintf(out, "%s -i %s\n", s.Package, s.Index)
			continue
		}
		fmt.Fprintln(out, s.Package)
	}
	return nil
}

// writeSpecsJSON encodes specifiers as an indented JSON array.
func writeSpecsJSON(w io.Writer, specs []manifest.Specifier) error {
	out := make([]specJSON, len(specs))
	for i, s := range specs {
		out[i] = specJSON{Package: s.Package, Index: s.Index}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
