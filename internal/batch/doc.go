// Package batch walks root directories, runs the transparency filter on
// every PNG it finds, and aggregates per-root results.
//
// Files are handled one at a time. Each file is read, decoded, filtered and,
// only when at least one pixel matched the background rule, re-encoded and
// written back. A failure on one file is returned as a Failed [Result] and
// never stops the batch; a root that does not exist is skipped silently.
//
// Layout:
//   - discover.go: recursive .png enumeration
//   - processor.go: per-file load/filter/write boundary and per-root loop
//   - runner.go: iteration over configured roots
//   - result.go, stats.go: typed outcomes and counters
//   - errors.go: failure taxonomy
package batch
