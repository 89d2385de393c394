package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"bgclear/internal/codec"
	"bgclear/internal/config"
	"bgclear/internal/filter"
)

// Options control how each file is filtered and where results go.
type Options struct {
	Threshold uint8
	DryRun    bool   // classify and count, never write
	OutputDir string // mirror results under OutputDir/<root name>; empty rewrites in place
}

// Processor applies the transparency filter to files, one at a time.
type Processor struct {
	codec *codec.Codec
	opts  Options
	log   logrus.FieldLogger
}

func NewProcessor(c *codec.Codec, opts Options, log logrus.FieldLogger) *Processor {
	return &Processor{codec: c, opts: opts, log: log}
}

// ProcessDirectory processes every PNG under root and returns the aggregated
// counters. observe, if non-nil, is called with each file's result as soon as
// it is known. The context is only consulted between files.
func (p *Processor) ProcessDirectory(ctx context.Context, root config.Root, observe func(Result)) Stats {
	stats := NewStats()
	log := p.log.WithField("root", root.Name)

	files, err := Discover(root.Path, log)
	if err != nil {
		log.WithError(err).Warn("Cannot walk root")
		return stats
	}
	log.WithField("files", len(files)).Debug("Discovered PNG files")

	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		res := p.ProcessFile(path, p.destination(root, path))
		stats.Add(res)
		if observe != nil {
			observe(res)
		}
	}
	return stats
}

// destination returns where the result for path is written.
func (p *Processor) destination(root config.Root, path string) string {
	if p.opts.OutputDir == "" {
		return path
	}
	rel, err := filepath.Rel(root.Path, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.Join(p.opts.OutputDir, root.Name, rel)
}

// ProcessFile loads path, clears background alpha, and writes the result to dst
// when at least one pixel matched. An empty dst means path itself. Every
// failure, including a panic, is reported through the returned Result.
func (p *Processor) ProcessFile(path, dst string) (res Result) {
	if dst == "" {
		dst = path
	}
	inPlace := dst == path
	start := time.Now()
	res = Result{Path: path, DryRun: p.opts.DryRun}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = Failed
			res.Output = ""
			res.Err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
		res.Duration = time.Since(start)
		p.logResult(res)
	}()

	fi, err := os.Stat(path)
	if err != nil {
		return failed(res, &IOError{Op: "stat", Path: path, Err: err})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return failed(res, &IOError{Op: "read", Path: path, Err: err})
	}
	img, err := p.codec.Decode(data)
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: err})
	}

	out, counts := filter.RemoveWhite(img, p.opts.Threshold)
	res.Pixels, res.Cleared = counts.Matched, counts.Cleared

	if counts.Matched == 0 {
		res.Outcome = Unchanged
		// a mirror must hold every file, so unchanged sources are copied verbatim
		if !inPlace && !p.opts.DryRun {
			if err := writeFileAtomic(dst, data, fi.Mode().Perm()); err != nil {
				return failed(res, &IOError{Op: "write", Path: dst, Err: err})
			}
			res.Output = dst
		}
		return res
	}

	res.Outcome = Modified
	if p.opts.DryRun {
		return res
	}
	encoded, err := p.codec.Encode(out)
	if err != nil {
		return failed(res, &EncodeError{Path: path, Err: err})
	}
	target := dst
	if inPlace {
		// rename replaces a symlink itself, so write through to the file it names
		if target, err = filepath.EvalSymlinks(path); err != nil {
			return failed(res, &IOError{Op: "stat", Path: path, Err: err})
		}
	}
	if err := writeFileAtomic(target, encoded, fi.Mode().Perm()); err != nil {
		return failed(res, &IOError{Op: "write", Path: dst, Err: err})
	}
	res.Output = dst
	return res
}

func failed(res Result, err error) Result {
	res.Outcome = Failed
	res.Err = err
	return res
}

func (p *Processor) logResult(res Result) {
	entry := p.log.WithFields(logrus.Fields{
		"path":     res.Path,
		"outcome":  res.Outcome.String(),
		"pixels":   res.Pixels,
		"cleared":  res.Cleared,
		"duration": res.Duration,
	})
	if res.Err != nil {
		entry.WithError(res.Err).Debug("File failed")
		return
	}
	if res.Output != "" && res.Output != res.Path {
		entry = entry.WithField("output", res.Output)
	}
	entry.Debug("File processed")
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// over path, so a failed write never leaves a truncated image behind.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
