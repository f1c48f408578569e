// Package report writes the result file produced after a search.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Amr-9/ZeroHunter/internal/ui"
	"github.com/Amr-9/ZeroHunter/pkg/generator"
)

// Report is everything recorded about one finished search.
type Report struct {
	Config    *generator.Config
	Workers   int
	Matches   []generator.Match
	Elapsed   time.Duration
	Attempts  uint64
	Generated time.Time
}

// Render writes r in the result file format.
func Render(w io.Writer, r Report) error {
	_, err := fmt.Fprintf(w, `ZeroHunter Results
==================

Algorithm:  %s
Zeros:      %d
Target:     %d
Workers:    %d

Matches (arrival order):
`, r.Config.Algorithm, r.Config.ZeroCount, r.Config.TargetCount, r.Workers)
	if err != nil {
		return err
	}

	for _, m := range r.Matches {
		if _, err := fmt.Fprintf(w, "  %s\n", m); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, `
Statistics:
  Found:    %d
  Time:     %s
  Attempts: %s

Generated: %s
`, len(r.Matches), ui.FormatDuration(r.Elapsed), ui.FormatNumber(r.Attempts), r.Generated.Format("2006-01-02 15:04:05"))
	return err
}

// Save writes r to path, replacing any previous file.
func Save(path string, r Report) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save results: %w", cerr)
		}
	}()

	if err := Render(f, r); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}
