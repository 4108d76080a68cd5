package main

import (
	"testing"

	"spool/internal/testsupport"
)

func TestManifestsListsJobCounts(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteManifest(t, env.cfg, "default.urls", "https://example.com/a\n# comment\nhttps://example.com/b\n")
	testsupport.WriteManifest(t, env.cfg, "lectures.urls", "https://example.com/c\n")

	out, _, err := runCLI(t, env.configPath, "manifests")
	if err != nil {
		t.Fatalf("manifests: %v", err)
	}
	requireContains(t, out, "Default")
	requireContains(t, out, "Lectures")
	requireContains(t, out, env.cfg.Paths.OutputDir)
}

func TestManifestsWithEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "manifests")
	if err != nil {
		t.Fatalf("manifests: %v", err)
	}
	requireContains(t, out, "No manifests found")
}
