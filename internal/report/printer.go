// Package report prints per-file progress and per-root summaries.
package report

import (
	"fmt"
	"io"

	"bgclear/internal/batch"
	"bgclear/internal/config"
)

// Printer writes human-readable progress to w. It implements batch.Reporter.
type Printer struct {
	w       io.Writer
	verbose bool // adds per-root timing
	dryRun  bool
}

func NewPrinter(w io.Writer, verbose, dryRun bool) *Printer {
	return &Printer{w: w, verbose: verbose, dryRun: dryRun}
}

func (p *Printer) Start() {
	_, _ = fmt.Fprintf(p.w, "Removing white backgrounds from images...\n\n")
	if p.dryRun {
		_, _ = fmt.Fprintf(p.w, "Dry run: no files will be written.\n\n")
	}
}

func (p *Printer) RootStart(root config.Root) {
	_, _ = fmt.Fprintf(p.w, "Processing %s directory: %s\n\n", root.Name, root.Path)
}

func (p *Printer) File(r batch.Result) {
	_, _ = fmt.Fprintln(p.w, FileLine(r))
}

func FileLine(r batch.Result) string {
	switch r.Outcome {
	case batch.Modified:
		line := fmt.Sprintf("✓ %s - %d pixels made transparent", r.Path, r.Pixels)
		if r.DryRun {
			line += " (dry run)"
		} else if r.Output != "" && r.Output != r.Path {
			line += " -> " + r.Output
		}
		return line
	case batch.Unchanged:
		return fmt.Sprintf("  %s - no changes needed", r.Path)
	default:
		return fmt.Sprintf("✗ Error processing %s: %s", r.Path, r.Reason())
	}
}

func (p *Printer) RootDone(root config.Root, s batch.Stats) {
	_, _ = fmt.Fprintf(p.w, "\n%s\n", SummaryLine(root.Name, s))
	if p.verbose && s.Total > 0 {
		p.writeTiming(s)
	}
	_, _ = fmt.Fprintln(p.w)
}

// SummaryLine formats the per-root "modified/total" line.
func SummaryLine(name string, s batch.Stats) string {
	line := fmt.Sprintf("%s: %d/%d files modified", name, s.Modified, s.Total)
	if s.Failed > 0 {
		line += fmt.Sprintf(" (%d failed)", s.Failed)
	}
	return line
}

func (p *Printer) writeTiming(s batch.Stats) {
	_, _ = fmt.Fprintf(p.w, "Pixels matched:   %d\n", s.Pixels)
	_, _ = fmt.Fprintf(p.w, "Time (total):     %.3fs\n", s.Elapsed.Seconds())
	_, _ = fmt.Fprintf(p.w, "Time (file avg):  %.3fs\n", s.TimeAvg().Seconds())
	_, _ = fmt.Fprintf(p.w, "Minimum:          %.3fs\n", s.Minimum.Seconds())
	_, _ = fmt.Fprintf(p.w, "Maximum:          %.3fs\n", s.Maximum.Seconds())
}

func (p *Printer) Done(sum batch.Summary) {
	if sum.Interrupted {
		_, _ = fmt.Fprintln(p.w, "Interrupted. Remaining files were left untouched.")
		return
	}
	processed := 0
	for _, r := range sum.Roots {
		if !r.Skipped {
			processed++
		}
	}
	if processed == 0 {
		_, _ = fmt.Fprintln(p.w, "No root directories found; nothing to do.")
	}
	_, _ = fmt.Fprintln(p.w, "Done! All images processed.")
}
