package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// FetchRequest describes one download invocation.
type FetchRequest struct {
	URL         string
	DestDir     string
	Format      string
	Accelerated bool
}

// Client defines the fetcher capability the dispatcher depends on.
type Client interface {
	Probe(ctx context.Context, url string) (ProbeResult, error)
	Fetch(ctx context.Context, req FetchRequest) error
	Outdated(ctx context.Context) (bool, error)
	Update(ctx context.Context) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default yt-dlp binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithArchiveFile sets the download archive passed to yt-dlp so
// already-complete targets are skipped on re-runs.
func WithArchiveFile(path string) Option {
	return func(c *CLI) { c.archiveFile = path }
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(agent string) Option {
	return func(c *CLI) {
		if agent != "" {
			c.userAgent = agent
		}
	}
}

// WithConcurrentFragments sets the fragment parallelism used when the
// accelerator is not in play.
func WithConcurrentFragments(n int) Option {
	return func(c *CLI) {
		if n > 0 {
			c.fragments = n
		}
	}
}

// WithAccelerator configures the aria2c external-downloader arguments.
func WithAccelerator(binary string, connections int, chunkSize string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.accelBinary = binary
		}
		if connections > 0 {
			c.accelConnections = connections
		}
		if chunkSize != "" {
			c.accelChunkSize = chunkSize
		}
	}
}

// WithOutputSink receives every line the tool prints, for verbose
// logging. The fetch diagnostic tail is captured regardless.
func WithOutputSink(sink func(line string)) Option {
	return func(c *CLI) { c.sink = sink }
}

// CLI wraps the yt-dlp executable.
type CLI struct {
	binary           string
	archiveFile      string
	userAgent        string
	fragments        int
	accelBinary      string
	accelConnections int
	accelChunkSize   string
	sink             func(string)
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:           "yt-dlp",
		userAgent:        "Mozilla/5.0",
		fragments:        10,
		accelBinary:      "aria2c",
		accelConnections: 4,
		accelChunkSize:   "1M",
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Fetch downloads one identifier into its destination directory. On
// tool failure the returned error carries the diagnostic tail of the
// tool output. Context cancellation is reported as the context error.
func (c *CLI) Fetch(ctx context.Context, req FetchRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return errors.New("url required")
	}
	if strings.TrimSpace(req.DestDir) == "" {
		return errors.New("destination directory required")
	}
	format := req.Format
	if format == "" {
		format = "best"
	}

	args := []string{
		req.URL,
		"--user-agent", c.userAgent,
		"-f", format,
		"--prefer-ffmpeg",
		"--write-description",
		"--add-metadata",
		"--write-auto-sub",
		"--embed-subs",
	}
	if c.archiveFile != "" {
		args = append(args, "--download-archive", c.archiveFile)
	}
	if req.Accelerated {
		args = append(args,
			"--external-downloader", c.accelBinary,
			"--external-downloader-args", fmt.Sprintf("-x %d -k %s", c.accelConnections, c.accelChunkSize),
		)
	} else {
		args = append(args,
			"--concurrent-fragments", strconv.Itoa(c.fragments),
			"--no-part",
		)
	}
	args = append(args, "-o", filepath.Join(req.DestDir, "%(title)s.%(ext)s"))

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	tail, err := runWithTail(cmd, c.sink)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tail != "" {
			return fmt.Errorf("yt-dlp: %w: %s", err, tail)
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// Outdated reports whether yt-dlp advertises a newer release. Any tool
// failure reads as up to date; an outdated fetcher is a warning, not a
// blocker.
func (c *CLI) Outdated(ctx context.Context) (bool, error) {
	cmd := commandContext(ctx, c.binary, "-U", "--", "--no-update")
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	text := string(output)
	outdated := strings.Contains(text, "Latest version:") &&
		strings.Contains(text, "Current version:") &&
		!strings.Contains(text, "yt-dlp is up to date")
	return outdated, nil
}

// Update runs yt-dlp self-update.
func (c *CLI) Update(ctx context.Context) error {
	cmd := commandContext(ctx, c.binary, "-U")
	tail, err := runWithTail(cmd, c.sink)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tail != "" {
			return fmt.Errorf("yt-dlp update: %w: %s", err, tail)
		}
		return fmt.Errorf("yt-dlp update: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
