package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the recognized manifest file suffix.
const Extension = ".urls"

// DefaultName is the manifest base name that maps to the output root.
const DefaultName = "default"

// ErrUnreadable marks a manifest file that matched the extension but
// could not be opened. Callers skip the manifest and continue the run.
var ErrUnreadable = errors.New("manifest unreadable")

// Manifest describes one *.urls file and its destination directory.
type Manifest struct {
	Name    string // base name without extension
	Path    string
	DestDir string
}

// Job is one unit of download work derived from a manifest line.
type Job struct {
	URL      string
	Manifest string
	Line     int // 1-based position in the raw file
	DestDir  string
}

// DestinationDir maps a manifest base name to its output directory.
// The mapping is pure and total: "default" means the root itself.
func DestinationDir(outputRoot, baseName string) string {
	if baseName == DefaultName {
		return outputRoot
	}
	return filepath.Join(outputRoot, baseName)
}

// Enumerate lists the manifests under dir, sorted by name so discovery
// order is stable across runs. A missing directory yields an empty run
// rather than an error; bootstrap of the default manifest is external.
func Enumerate(dir, outputRoot string) ([]Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest directory %q: %w", dir, err)
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), Extension) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "" {
			continue
		}
		manifests = append(manifests, Manifest{
			Name:    base,
			Path:    filepath.Join(dir, name),
			DestDir: DestinationDir(outputRoot, base),
		})
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}

// LoadJobs reads the manifest and returns its jobs in file order. A
// line yields a job iff, after trimming, it is non-empty and does not
// start with '#'. Line numbers count raw lines, comments included.
func LoadJobs(m Manifest) ([]Job, error) {
	file, err := os.Open(m.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, m.Path, err)
	}
	defer file.Close()

	var jobs []Job
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		jobs = append(jobs, Job{
			URL:      raw,
			Manifest: m.Name,
			Line:     line,
			DestDir:  m.DestDir,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, m.Path, err)
	}
	return jobs, nil
}
