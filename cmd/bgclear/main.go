// Command bgclear turns white and near-white PNG backgrounds transparent,
// rewriting every PNG under public/Building and public/Furniture in place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"bgclear/internal/batch"
	"bgclear/internal/codec"
	"bgclear/internal/config"
	"bgclear/internal/logging"
	"bgclear/internal/report"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "1.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.DefaultConfig(programDir())
	if err := config.ParseFlags(&cfg, args, os.Stderr); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, config.ErrVersion):
			fmt.Fprintln(os.Stdout, "bgclear v"+version)
			return 0
		}
		fmt.Fprintf(os.Stderr, "bgclear: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "bgclear: %v\n", err)
		return 1
	}

	log := logging.NewLogger(&cfg)
	log.WithFields(logrus.Fields{
		"version":   version,
		"threshold": cfg.Threshold,
		"public":    cfg.PublicDir,
		"dry_run":   cfg.DryRun,
	}).Debug("Starting")

	if p := startProfile(&cfg); p != nil {
		defer p.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := batch.NewProcessor(codec.New(cfg.Compression.Level()), batch.Options{
		Threshold: uint8(cfg.Threshold),
		DryRun:    cfg.DryRun,
		OutputDir: cfg.OutputDir,
	}, log)
	printer := report.NewPrinter(os.Stdout, cfg.Verbose, cfg.DryRun)

	sum := batch.Run(ctx, cfg.Roots, proc, printer, log)

	totals := sum.Totals()
	log.WithFields(logrus.Fields{
		"total":    totals.Total,
		"modified": totals.Modified,
		"failed":   totals.Failed,
	}).Debug("Finished")
	// per-file failures are reported above and do not change the exit status
	return 0
}

// programDir returns the directory holding the running executable, falling
// back to the working directory when it cannot be determined.
func programDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func startProfile(cfg *config.Config) interface{ Stop() } {
	switch cfg.Profile {
	case config.ProfileCPU:
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook)
	case config.ProfileMem:
		return profile.Start(profile.MemProfile, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook)
	}
	return nil
}
