package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"spool/internal/deps"
)

func stubBinary(t *testing.T, name string) {
	t.Helper()
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	t.Setenv("PATH", binDir)
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	stubBinary(t, "fake-fetch")

	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "fetcher", Command: "fake-fetch"},
		{Name: "accelerator", Command: "definitely-not-installed", Optional: true},
		{Name: "empty", Command: "  "},
	})

	if !statuses[0].Available {
		t.Fatalf("expected fake-fetch available: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Fatalf("expected accelerator missing: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %+v", statuses[2])
	}
}

func TestMissingRequiredIgnoresOptional(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	statuses := deps.CheckBinaries(deps.Required("yt-dlp", "aria2c"))
	missing := deps.MissingRequired(statuses)

	if len(missing) != 2 {
		t.Fatalf("expected fetcher and ffmpeg missing, got %+v", missing)
	}
	for _, status := range missing {
		if status.Optional {
			t.Fatalf("optional requirement reported as required: %+v", status)
		}
	}
}

func TestAcceleratorCheckCachesFirstAnswer(t *testing.T) {
	stubBinary(t, "aria2c")

	check := deps.NewAcceleratorCheck("aria2c")
	if !check.Available() {
		t.Fatal("expected accelerator available")
	}

	// The answer is process-wide for the run; dropping the stub from
	// PATH must not change later calls.
	t.Setenv("PATH", t.TempDir())
	if !check.Available() {
		t.Fatal("expected cached availability")
	}

	fresh := deps.NewAcceleratorCheck("aria2c")
	if fresh.Available() {
		t.Fatal("expected fresh check to miss")
	}
}

func TestAcceleratorCheckEmptyBinary(t *testing.T) {
	if deps.NewAcceleratorCheck("").Available() {
		t.Fatal("expected empty binary to be unavailable")
	}
}
