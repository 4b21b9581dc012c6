package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gifify/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".cache", "gifify", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Paths.UIBind != "127.0.0.1:8765" {
		t.Fatalf("unexpected ui bind: %q", cfg.Paths.UIBind)
	}
	if cfg.Defaults.FPS != 12.0 {
		t.Fatalf("unexpected default fps: %v", cfg.Defaults.FPS)
	}
	if cfg.Defaults.MaxWidth != 480 {
		t.Fatalf("unexpected default max width: %d", cfg.Defaults.MaxWidth)
	}
	if cfg.Defaults.Dither != "sierra2_4a" {
		t.Fatalf("unexpected default dither: %q", cfg.Defaults.Dither)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.Gifsicle != "gifsicle" {
		t.Fatalf("unexpected tool names: %+v", cfg.Tools)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if !strings.HasPrefix(cfg.HistoryDBPath(), cfg.Paths.LogDir) {
		t.Fatalf("history db should live under log dir: %q", cfg.HistoryDBPath())
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[defaults]
fps = 24.0
colors = 64
dither = "bayer"

[paths]
ui_bind = "127.0.0.1:9000"

[ui]
max_upload_mib = 16
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Defaults.FPS != 24.0 || cfg.Defaults.Colors != 64 || cfg.Defaults.Dither != "bayer" {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Paths.UIBind != "127.0.0.1:9000" {
		t.Fatalf("unexpected ui bind: %q", cfg.Paths.UIBind)
	}
	if cfg.MaxUploadBytes() != 16<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes())
	}
	// Unset sections still carry defaults.
	if cfg.Defaults.MaxWidth != 480 {
		t.Fatalf("expected default max width, got %d", cfg.Defaults.MaxWidth)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"bad colors", "[defaults]\ncolors = 1000\n", "defaults.colors"},
		{"bad dither", "[defaults]\ndither = \"ordered\"\n", "defaults.dither"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"trace\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Defaults.Colors != 256 {
		t.Fatalf("sample should match defaults, got colors=%d", cfg.Defaults.Colors)
	}
}
