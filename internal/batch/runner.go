package batch

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"bgclear/internal/config"
)

// Reporter receives progress events from Run.
type Reporter interface {
	Start()
	RootStart(root config.Root)
	File(r Result)
	RootDone(root config.Root, s Stats)
	Done(sum Summary)
}

// Run processes every configured root in order. Roots that do not exist are
// skipped without error. Run returns early, with Interrupted set, once ctx is
// cancelled; the file in progress is always finished first.
func Run(ctx context.Context, roots []config.Root, proc *Processor, rep Reporter, log logrus.FieldLogger) Summary {
	var sum Summary
	rep.Start()

	for _, root := range roots {
		if ctx.Err() != nil {
			sum.Interrupted = true
			break
		}
		rs := RootSummary{Root: root, Stats: NewStats()}

		fi, err := os.Stat(root.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithFields(logrus.Fields{"root": root.Name, "path": root.Path}).Debug("Root does not exist, skipping")
			rs.Skipped = true
		case err != nil:
			log.WithFields(logrus.Fields{"root": root.Name, "path": root.Path}).WithError(err).Warn("Cannot stat root, skipping")
			rs.Skipped = true
		case !fi.IsDir():
			log.WithFields(logrus.Fields{"root": root.Name, "path": root.Path}).Warn("Root is not a directory, skipping")
			rs.Skipped = true
		}
		if rs.Skipped {
			sum.Roots = append(sum.Roots, rs)
			continue
		}

		rep.RootStart(root)
		rs.Stats = proc.ProcessDirectory(ctx, root, rep.File)
		rep.RootDone(root, rs.Stats)
		sum.Roots = append(sum.Roots, rs)
	}

	if ctx.Err() != nil {
		sum.Interrupted = true
	}
	rep.Done(sum)
	return sum
}
