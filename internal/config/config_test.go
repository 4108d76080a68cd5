package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spool/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			t.Fatalf("Chdir returned error: %v", err)
		}
	})

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

	if cfg.Paths.ManifestDir != filepath.Join(workDir, "urls") {
		t.Fatalf("unexpected manifest dir: %q", cfg.Paths.ManifestDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(workDir, "videos") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.ArchiveFile != filepath.Join(workDir, "videos", "downloaded.txt") {
		t.Fatalf("unexpected archive file: %q", cfg.Paths.ArchiveFile)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "spool", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Fetcher.Binary != "yt-dlp" {
		t.Fatalf("unexpected fetcher binary: %q", cfg.Fetcher.Binary)
	}
	if cfg.Fetcher.UpdateBeforeRun {
		t.Fatal("expected update_before_run disabled by default")
	}
	if cfg.Accelerator.Preference != "auto" {
		t.Fatalf("unexpected accelerator preference: %q", cfg.Accelerator.Preference)
	}
	if cfg.Quality.ForceBest || cfg.Quality.ProbeBeforeDownload {
		t.Fatal("expected quality toggles disabled by default")
	}
	if cfg.Batch.Workers != 2 {
		t.Fatalf("unexpected worker count: %d", cfg.Batch.Workers)
	}
	if cfg.Batch.Retries != 0 {
		t.Fatalf("unexpected retries: %d", cfg.Batch.Retries)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ManifestDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be a directory", dir)
		}
	}
	// Output tree stays untouched; the fetcher creates it on demand.
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("expected output dir to be absent, stat err: %v", err)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spool.toml")
	content := `
[paths]
manifest_dir = "` + filepath.Join(dir, "queues") + `"
output_dir = "` + filepath.Join(dir, "media") + `"

[accelerator]
preference = "Preferred"

[quality]
probe_before_download = true

[batch]
workers = 6
retries = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected to load %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.ManifestDir != filepath.Join(dir, "queues") {
		t.Fatalf("unexpected manifest dir: %q", cfg.Paths.ManifestDir)
	}
	if cfg.Accelerator.Preference != "preferred" {
		t.Fatalf("expected preference normalized to lowercase, got %q", cfg.Accelerator.Preference)
	}
	if !cfg.Quality.ProbeBeforeDownload {
		t.Fatal("expected probe_before_download true")
	}
	if cfg.Batch.Workers != 6 || cfg.Batch.Retries != 2 {
		t.Fatalf("unexpected batch settings: %+v", cfg.Batch)
	}
	if cfg.Paths.ArchiveFile != filepath.Join(dir, "media", "downloaded.txt") {
		t.Fatalf("archive default should follow output dir, got %q", cfg.Paths.ArchiveFile)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad preference", func(c *config.Config) { c.Accelerator.Preference = "maybe" }, "accelerator.preference"},
		{"zero workers", func(c *config.Config) { c.Batch.Workers = -1 }, "batch.workers"},
		{"negative retries", func(c *config.Config) { c.Batch.Retries = -1 }, "batch.retries"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"negative fetch timeout", func(c *config.Config) { c.Fetcher.FetchTimeout = -5 }, "fetch_timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Accelerator.Preference = "auto"
			cfg.Logging.Format = "console"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Accelerator.Preference != "auto" {
		t.Fatalf("unexpected sample preference: %q", cfg.Accelerator.Preference)
	}
}
