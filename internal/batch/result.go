package batch

import (
	"errors"
	"io/fs"
	"time"
)

// Outcome classifies how a single file was handled.
type Outcome int

const (
	Unchanged Outcome = iota // no pixel matched; file left alone
	Modified                 // at least one pixel matched; result written
	Failed                   // read, decode, encode or write failed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of processing one file.
type Result struct {
	Path     string
	Output   string // file written, empty if nothing was written
	Outcome  Outcome
	Pixels   int // pixels classified as background
	Cleared  int // of those, pixels that were not already transparent
	DryRun   bool
	Duration time.Duration
	Err      error
}

// Reason returns a short, path-free description of why r failed.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	var (
		decErr *DecodeError
		encErr *EncodeError
		ioErr  *IOError
	)
	switch {
	case errors.As(r.Err, &decErr):
		return "cannot decode image: " + bareError(decErr.Err)
	case errors.As(r.Err, &encErr):
		return "cannot encode image: " + bareError(encErr.Err)
	case errors.As(r.Err, &ioErr):
		return ioErr.Op + " failed: " + bareError(ioErr.Err)
	}
	return r.Err.Error()
}

// bareError strips the path from *fs.PathError values.
func bareError(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
