// Package report formats and persists package size measurements.
//
// The on-disk format is a CSV table with a fixed header and a text
// bar-chart column; the console format is a right-aligned two-column
// summary. Reports written with Write round-trip through Read.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mweigel/pysize/pkg/errors"
	"github.com/mweigel/pysize/pkg/probe"
)

// Header is the fixed CSV column set. Order is significant.
var Header = []string{"Package", "Total size [MB]", "Total size [bytes]", "Visualisation"}

// DefaultBarResolutionMB is the number of megabytes one '#' glyph
// represents in the Visualisation column.
const DefaultBarResolutionMB = 25

// DefaultNameWidth is the console column width packages are
// right-aligned to.
const DefaultNameWidth = 24

// FormatSize renders a byte count as decimal megabytes with one
// fractional digit, e.g. "12.3 MB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/1024/1024)
}

// HBar renders a byte count as a run of '#' glyphs, one per
// resolutionMB megabytes, rounded to nearest and clamped at zero.
// A resolutionMB of 0 or less falls back to the default.
func HBar(bytes int64, resolutionMB int) string {
	if resolutionMB <= 0 {
		resolutionMB = DefaultBarResolutionMB
	}
	n := int(math.Round(float64(bytes) / 1024 / 1024 / float64(resolutionMB)))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n)
}

// Write encodes measurements as CSV to w. Rows keep the order of
// results, which the prober has already sorted by size descending.
func Write(w io.Writer, results []probe.Measurement, resolutionMB int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range results {
		rec := []string{
			m.Package,
			FormatSize(m.Bytes),
			strconv.FormatInt(m.Bytes, 10),
			HBar(m.Bytes, resolutionMB),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV report to path, overwriting any existing
// file.
func WriteFile(path string, results []probe.Measurement, resolutionMB int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, results, resolutionMB)
}

// Read parses a report produced by Write back into measurements,
// preserving row order. The MB and Visualisation columns are
// derivable from the byte count and are not retained.
func Read(r io.Reader) ([]probe.Measurement, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read report header")
	}
	if len(header) != len(Header) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unexpected report header: %v", header)
	}

	var results []probe.Measurement
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		size, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"bad byte count for %s", rec[0])
		}
		results = append(results, probe.Measurement{Bytes: size, Package: rec[0]})
	}
	return results, nil
}

// Render writes the console summary: one line per measurement with the
// package right-aligned to nameWidth and the size in megabytes.
func Render(w io.Writer, results []probe.Measurement, nameWidth int) {
	if nameWidth <= 0 {
		nameWidth = DefaultNameWidth
	}
	for _, m := range results {
		fmt.Fprintf(w, "%*s: %6.1f MB\n", nameWidth, m.Package, float64(m.Bytes)/1024/1024)
	}
}
