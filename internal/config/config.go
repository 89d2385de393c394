// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. With no flags the defaults reproduce the original two-directory
// batch over public/Building and public/Furniture at threshold 240.
package config

import (
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"
)

// Compression selects the PNG encoder compression level.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionFast    Compression = "fast"
	CompressionBest    Compression = "best"
	CompressionNone    Compression = "none"
)

// Level maps c to the image/png constant. Unknown values map to the default.
func (c Compression) Level() png.CompressionLevel {
	switch c {
	case CompressionFast:
		return png.BestSpeed
	case CompressionBest:
		return png.BestCompression
	case CompressionNone:
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// LogFormat selects the logrus formatter.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// Profile selects a pkg/profile mode. Empty disables profiling.
type Profile string

const (
	ProfileNone Profile = ""
	ProfileCPU  Profile = "cpu"
	ProfileMem  Profile = "mem"
)

// Root is one directory tree to process. Name is used in report lines and as
// the subdirectory name under OutputDir.
type Root struct {
	Name string
	Path string
}

// Default root names, looked up beneath PublicDir.
var DefaultRootNames = []string{"Building", "Furniture"}

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being handed to the batch runner.
type Config struct {
	// Paths.
	PublicDir string
	Roots     []Root // Default: PublicDir/Building, PublicDir/Furniture.
	OutputDir string // Empty means rewrite in place.

	// Filter.
	Threshold   int         // Default: 240. Valid range 0..255.
	Compression Compression // Default: "default".

	// Behavior.
	DryRun bool

	// Logging and diagnostics.
	Verbose    bool
	LogFormat  LogFormat // Default: "text".
	Profile    Profile
	ProfileDir string // Default: current directory.

	// rootsFromFlags is set once -root is seen so the first one replaces the defaults.
	rootsFromFlags bool
}

// DefaultConfig returns the defaults with the public directory located beside baseDir.
func DefaultConfig(baseDir string) Config {
	public := filepath.Join(baseDir, "public")
	return Config{
		PublicDir:   public,
		Roots:       DefaultRoots(public),
		Threshold:   240,
		Compression: CompressionDefault,
		LogFormat:   LogText,
		ProfileDir:  ".",
	}
}

// DefaultRoots returns the conventional Building and Furniture roots under publicDir.
func DefaultRoots(publicDir string) []Root {
	roots := make([]Root, 0, len(DefaultRootNames))
	for _, name := range DefaultRootNames {
		roots = append(roots, Root{Name: name, Path: filepath.Join(publicDir, name)})
	}
	return roots
}

// Validate checks ranges, enum values, and root/output consistency.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be between 0 and 255, got %d", c.Threshold)
	}
	switch c.Compression {
	case CompressionDefault, CompressionFast, CompressionBest, CompressionNone:
	default:
		return fmt.Errorf("invalid compression %q (use default, fast, best, or none)", c.Compression)
	}
	switch c.LogFormat {
	case LogText, LogJSON:
	default:
		return fmt.Errorf("invalid log format %q (use text or json)", c.LogFormat)
	}
	switch c.Profile {
	case ProfileNone, ProfileCPU, ProfileMem:
	default:
		return fmt.Errorf("invalid profile %q (use cpu or mem)", c.Profile)
	}
	if len(c.Roots) == 0 {
		return errors.New("no root directories configured")
	}
	seen := make(map[string]bool, len(c.Roots))
	for _, r := range c.Roots {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("root %q has an empty name", r.Path)
		}
		if r.Path == "" {
			return fmt.Errorf("root %q has an empty path", r.Name)
		}
		key := strings.ToLower(r.Name)
		if seen[key] {
			return fmt.Errorf("duplicate root name %q", r.Name)
		}
		seen[key] = true
	}
	if c.OutputDir != "" {
		for _, r := range c.Roots {
			if isWithin(c.OutputDir, r.Path) {
				return fmt.Errorf("output directory %s is inside root %s", c.OutputDir, r.Path)
			}
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies beneath it, comparing cleaned absolute paths.
func isWithin(path, dir string) bool {
	p, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	d, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(d, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
