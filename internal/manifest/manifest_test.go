package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"spool/internal/manifest"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", name, err)
	}
	return path
}

func TestEnumerateSortsAndMapsDestinations(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "videos")
	writeManifest(t, dir, "music.urls", "")
	writeManifest(t, dir, "default.urls", "")
	writeManifest(t, dir, "clips.URLS", "")
	writeManifest(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.urls"), 0o755); err != nil {
		t.Fatal(err)
	}

	manifests, err := manifest.Enumerate(dir, out)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	var names []string
	for _, m := range manifests {
		names = append(names, m.Name)
	}
	if !reflect.DeepEqual(names, []string{"clips", "default", "music"}) {
		t.Fatalf("unexpected manifests: %v", names)
	}

	byName := map[string]manifest.Manifest{}
	for _, m := range manifests {
		byName[m.Name] = m
	}
	if byName["default"].DestDir != out {
		t.Fatalf("default should map to output root, got %q", byName["default"].DestDir)
	}
	if byName["music"].DestDir != filepath.Join(out, "music") {
		t.Fatalf("music should map to subdirectory, got %q", byName["music"].DestDir)
	}
}

func TestEnumerateMissingDirectoryYieldsEmptyRun(t *testing.T) {
	manifests, err := manifest.Enumerate(filepath.Join(t.TempDir(), "absent"), "/videos")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d", len(manifests))
	}
}

func TestEnumerateIsRestartable(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "default.urls", "https://example.com/a\n")

	first, err := manifest.Enumerate(dir, "/videos")
	if err != nil {
		t.Fatalf("first Enumerate: %v", err)
	}
	second, err := manifest.Enumerate(dir, "/videos")
	if err != nil {
		t.Fatalf("second Enumerate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("enumeration not stable: %v vs %v", first, second)
	}
}

func TestLoadJobsFiltersCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	content := "# header comment\n" +
		"\n" +
		"   \n" +
		"https://example.com/one\n" +
		"  https://example.com/two  \n" +
		"# https://example.com/commented\n" +
		"https://example.com/three"
	writeManifest(t, dir, "default.urls", content)

	manifests, err := manifest.Enumerate(dir, "/videos")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	jobs, err := manifest.LoadJobs(manifests[0])
	if err != nil {
		t.Fatalf("LoadJobs: %v", err)
	}

	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d: %+v", len(jobs), jobs)
	}
	wantURLs := []string{"https://example.com/one", "https://example.com/two", "https://example.com/three"}
	wantLines := []int{4, 5, 7}
	for i, job := range jobs {
		if job.URL != wantURLs[i] {
			t.Fatalf("job %d url = %q, want %q", i, job.URL, wantURLs[i])
		}
		if job.Line != wantLines[i] {
			t.Fatalf("job %d line = %d, want %d", i, job.Line, wantLines[i])
		}
		if job.Manifest != "default" {
			t.Fatalf("job %d manifest = %q", i, job.Manifest)
		}
		if job.DestDir != "/videos" {
			t.Fatalf("job %d dest = %q", i, job.DestDir)
		}
	}
}

func TestLoadJobsUnreadableManifest(t *testing.T) {
	m := manifest.Manifest{Name: "ghost", Path: filepath.Join(t.TempDir(), "ghost.urls")}
	_, err := manifest.LoadJobs(m)
	if !errors.Is(err, manifest.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestClassifySource(t *testing.T) {
	cases := []struct {
		raw      string
		platform bool
		playlist bool
	}{
		{"https://www.youtube.com/watch?v=abc", true, false},
		{"https://youtu.be/abc", true, false},
		{"https://music.youtube.com/watch?v=abc", true, false},
		{"https://www.youtube.com/playlist?list=PL123", true, true},
		{"https://www.youtube.com/watch?v=abc&list=PL123", true, true},
		{"https://vimeo.com/12345", false, false},
		{"https://example.com/videos/playlist/9", false, true},
		{"not a url", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		src := manifest.ClassifySource(tc.raw)
		if src.StreamingPlatform != tc.platform {
			t.Fatalf("ClassifySource(%q).StreamingPlatform = %v, want %v", tc.raw, src.StreamingPlatform, tc.platform)
		}
		if src.Playlist != tc.playlist {
			t.Fatalf("ClassifySource(%q).Playlist = %v, want %v", tc.raw, src.Playlist, tc.playlist)
		}
	}
}
