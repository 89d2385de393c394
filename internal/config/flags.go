package config

// This file implements CLI flag parsing. Every flag is optional; an empty
// argument list keeps DefaultConfig untouched.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrVersion is returned by ParseFlags when -version was requested.
var ErrVersion = errors.New("version requested")

// ParseFlags parses args (without the program name) into cfg.
// It returns flag.ErrHelp for -h and ErrVersion for -version.
func ParseFlags(cfg *Config, args []string, usageOut io.Writer) error {
	fs := flag.NewFlagSet("bgclear", flag.ContinueOnError)
	fs.SetOutput(usageOut)

	var showVersion bool
	publicDir := cfg.PublicDir

	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Per-channel value a pixel must exceed on R, G and B to become transparent (0-255)")
	fs.IntVar(&cfg.Threshold, "t", cfg.Threshold, "Same as -threshold")
	fs.StringVar(&publicDir, "public", cfg.PublicDir, "Directory holding the default Building and Furniture roots")
	fs.Var(&rootValue{cfg}, "root", "Root to process as NAME=PATH or PATH (repeatable; replaces the defaults)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Write results under this directory instead of in place")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Classify and count without writing any file")
	fs.BoolVar(&cfg.DryRun, "n", cfg.DryRun, "Same as -dry-run")
	fs.Var(&compressionValue{&cfg.Compression}, "compression", "PNG compression: default | fast | best | none")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Debug logging and per-root timing")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as -verbose")
	fs.Var(&logFormatValue{&cfg.LogFormat}, "log-format", "Log format: text | json")
	fs.Var(&profileValue{&cfg.Profile}, "profile", "Write a profile: cpu | mem")
	fs.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "Directory for profile output")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if showVersion {
		return ErrVersion
	}

	if publicDir != cfg.PublicDir {
		cfg.PublicDir = publicDir
		if !cfg.rootsFromFlags {
			cfg.Roots = DefaultRoots(publicDir)
		}
	}
	return nil
}

// rootValue appends to cfg.Roots, dropping the defaults on first use.
type rootValue struct{ cfg *Config }

func (v *rootValue) String() string {
	if v == nil || v.cfg == nil {
		return ""
	}
	parts := make([]string, 0, len(v.cfg.Roots))
	for _, r := range v.cfg.Roots {
		parts = append(parts, r.Name+"="+r.Path)
	}
	return strings.Join(parts, ",")
}

func (v *rootValue) Set(s string) error {
	r, err := ParseRoot(s)
	if err != nil {
		return err
	}
	if !v.cfg.rootsFromFlags {
		v.cfg.Roots = nil
		v.cfg.rootsFromFlags = true
	}
	v.cfg.Roots = append(v.cfg.Roots, r)
	return nil
}

// ParseRoot parses NAME=PATH. A bare PATH is named after its last element.
func ParseRoot(s string) (Root, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Root{}, fmt.Errorf("empty root")
	}
	if name, path, ok := strings.Cut(s, "="); ok {
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if name == "" || path == "" {
			return Root{}, fmt.Errorf("invalid root %q (want NAME=PATH)", s)
		}
		return Root{Name: name, Path: filepath.Clean(path)}, nil
	}
	path := filepath.Clean(s)
	return Root{Name: filepath.Base(path), Path: path}, nil
}

type compressionValue struct{ p *Compression }

func (v *compressionValue) String() string {
	if v == nil || v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *compressionValue) Set(s string) error {
	switch c := Compression(strings.ToLower(s)); c {
	case CompressionDefault, CompressionFast, CompressionBest, CompressionNone:
		*v.p = c
		return nil
	}
	return fmt.Errorf("invalid compression %q (use default, fast, best, or none)", s)
}

type logFormatValue struct{ p *LogFormat }

func (v *logFormatValue) String() string {
	if v == nil || v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *logFormatValue) Set(s string) error {
	switch f := LogFormat(strings.ToLower(s)); f {
	case LogText, LogJSON:
		*v.p = f
		return nil
	}
	return fmt.Errorf("invalid log format %q (use text or json)", s)
}

type profileValue struct{ p *Profile }

func (v *profileValue) String() string {
	if v == nil || v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *profileValue) Set(s string) error {
	switch p := Profile(strings.ToLower(s)); p {
	case ProfileCPU, ProfileMem:
		*v.p = p
		return nil
	}
	return fmt.Errorf("invalid profile %q (use cpu or mem)", s)
}
