package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"spool/internal/config"
)

// WriteManifest creates a manifest file under the config's manifest
// directory and returns its path.
func WriteManifest(t testing.TB, cfg *config.Config, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(cfg.Paths.ManifestDir, 0o755); err != nil {
		t.Fatalf("create manifest dir: %v", err)
	}
	path := filepath.Join(cfg.Paths.ManifestDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", name, err)
	}
	return path
}
