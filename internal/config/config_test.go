package config

import (
	"errors"
	"flag"
	"image/png"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/srv/app")
	require.Equal(t, filepath.Join("/srv/app", "public"), cfg.PublicDir)
	require.Equal(t, 240, cfg.Threshold)
	require.Equal(t, []Root{
		{Name: "Building", Path: filepath.Join("/srv/app", "public", "Building")},
		{Name: "Furniture", Path: filepath.Join("/srv/app", "public", "Furniture")},
	}, cfg.Roots)
	require.NoError(t, cfg.Validate())
}

func TestParseFlags_NoArgsKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig("/srv/app")
	want := cfg
	require.NoError(t, ParseFlags(&cfg, nil, io.Discard))
	require.Equal(t, want, cfg)
}

func TestParseFlags_Overrides(t *testing.T) {
	cfg := DefaultConfig("/srv/app")
	err := ParseFlags(&cfg, []string{
		"-threshold", "200",
		"-root", "Icons=/data/icons",
		"-root", "/data/tiles/",
		"-compression", "best",
		"-dry-run",
		"-log-format", "json",
		"-out", "/tmp/out",
	}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Threshold)
	require.Equal(t, []Root{
		{Name: "Icons", Path: "/data/icons"},
		{Name: "tiles", Path: "/data/tiles"},
	}, cfg.Roots)
	require.Equal(t, CompressionBest, cfg.Compression)
	require.Equal(t, png.BestCompression, cfg.Compression.Level())
	require.True(t, cfg.DryRun)
	require.Equal(t, LogJSON, cfg.LogFormat)
	require.Equal(t, "/tmp/out", cfg.OutputDir)
	require.NoError(t, cfg.Validate())
}

func TestParseFlags_PublicMovesDefaultRoots(t *testing.T) {
	cfg := DefaultConfig("/srv/app")
	require.NoError(t, ParseFlags(&cfg, []string{"-public", "/assets"}, io.Discard))
	require.Equal(t, DefaultRoots("/assets"), cfg.Roots)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad compression", []string{"-compression", "max"}},
		{"bad log format", []string{"-log-format", "xml"}},
		{"bad profile", []string{"-profile", "trace"}},
		{"bad root", []string{"-root", "=/x"}},
		{"positional", []string{"extra"}},
		{"not a number", []string{"-threshold", "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/srv/app")
			require.Error(t, ParseFlags(&cfg, tt.args, io.Discard))
		})
	}
}

func TestParseFlags_HelpAndVersion(t *testing.T) {
	cfg := DefaultConfig("/srv/app")
	require.True(t, errors.Is(ParseFlags(&cfg, []string{"-h"}, io.Discard), flag.ErrHelp))

	cfg = DefaultConfig("/srv/app")
	require.ErrorIs(t, ParseFlags(&cfg, []string{"-version"}, io.Discard), ErrVersion)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"threshold 0", func(c *Config) { c.Threshold = 0 }, false},
		{"threshold 255", func(c *Config) { c.Threshold = 255 }, false},
		{"threshold negative", func(c *Config) { c.Threshold = -1 }, true},
		{"threshold too big", func(c *Config) { c.Threshold = 256 }, true},
		{"unknown compression", func(c *Config) { c.Compression = "zip" }, true},
		{"no roots", func(c *Config) { c.Roots = nil }, true},
		{"duplicate names", func(c *Config) { c.Roots[1].Name = "building" }, true},
		{"empty name", func(c *Config) { c.Roots[0].Name = " " }, true},
		{"output inside root", func(c *Config) { c.OutputDir = filepath.Join(c.Roots[0].Path, "out") }, true},
		{"output equals root", func(c *Config) { c.OutputDir = c.Roots[1].Path }, true},
		{"output beside roots", func(c *Config) { c.OutputDir = "/srv/app/processed" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/srv/app")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		in   string
		want Root
	}{
		{"Decor=/a/b", Root{Name: "Decor", Path: "/a/b"}},
		{" Decor = /a/b/ ", Root{Name: "Decor", Path: "/a/b"}},
		{"/a/Walls", Root{Name: "Walls", Path: "/a/Walls"}},
		{"rel/dir/", Root{Name: "dir", Path: "rel/dir"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoot(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
	_, err := ParseRoot("")
	require.Error(t, err)
}
