package batch

import (
	"math"
	"time"

	"bgclear/internal/config"
)

// Stats aggregates the results of one root. Total counts every PNG examined,
// including failures; Modified counts files with at least one matched pixel.
type Stats struct {
	Total     int
	Modified  int
	Unchanged int
	Failed    int
	Pixels    int

	Elapsed time.Duration // sum of per-file durations
	Minimum time.Duration
	Maximum time.Duration
}

func NewStats() Stats {
	return Stats{Minimum: math.MaxInt64, Maximum: math.MinInt64}
}

func (s *Stats) Add(r Result) {
	s.Total++
	switch r.Outcome {
	case Modified:
		s.Modified++
		s.Pixels += r.Pixels
	case Unchanged:
		s.Unchanged++
	case Failed:
		s.Failed++
	}
	s.Elapsed += r.Duration
	if r.Duration < s.Minimum {
		s.Minimum = r.Duration
	}
	if r.Duration > s.Maximum {
		s.Maximum = r.Duration
	}
}

func (s Stats) TimeAvg() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Total)
}

func (s *Stats) Merge(o Stats) {
	if o.Total == 0 {
		return
	}
	if s.Total == 0 {
		*s = o
		return
	}
	s.Total += o.Total
	s.Modified += o.Modified
	s.Unchanged += o.Unchanged
	s.Failed += o.Failed
	s.Pixels += o.Pixels
	s.Elapsed += o.Elapsed
	if o.Minimum < s.Minimum {
		s.Minimum = o.Minimum
	}
	if o.Maximum > s.Maximum {
		s.Maximum = o.Maximum
	}
}

// RootSummary is the outcome of one configured root.
type RootSummary struct {
	Root    config.Root
	Stats   Stats
	Skipped bool // root did not exist or was not a directory
}

// Summary is the outcome of a whole run.
type Summary struct {
	Roots       []RootSummary
	Interrupted bool
}

func (s Summary) Totals() Stats {
	total := NewStats()
	for _, r := range s.Roots {
		total.Merge(r.Stats)
	}
	return total
}
