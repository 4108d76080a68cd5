package main

import "testing"

func TestDepsReportsStubbedTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "deps")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "yt-dlp")
	requireContains(t, out, "ffmpeg")
	requireContains(t, out, "found")
}

func TestDepsFailsWhenRequiredMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Fetcher.Binary = "spool-missing-fetcher"
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, env.configPath, "deps")
	if err == nil {
		t.Fatal("expected error when a required tool is missing")
	}
	requireContains(t, out, "missing")
}
