package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFetcher()
	c.normalizeAccelerator()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ManifestDir) == "" {
		c.Paths.ManifestDir = defaultManifestDir
	}
	if c.Paths.ManifestDir, err = expandPath(c.Paths.ManifestDir); err != nil {
		return fmt.Errorf("paths.manifest_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ArchiveFile) == "" {
		c.Paths.ArchiveFile = filepath.Join(c.Paths.OutputDir, defaultArchiveName)
	}
	if c.Paths.ArchiveFile, err = expandPath(c.Paths.ArchiveFile); err != nil {
		return fmt.Errorf("paths.archive_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeFetcher() {
	if strings.TrimSpace(c.Fetcher.Binary) == "" {
		c.Fetcher.Binary = defaultFetcherBinary
	}
	if c.Fetcher.ProbeTimeout <= 0 {
		c.Fetcher.ProbeTimeout = defaultProbeTimeout
	}
	if strings.TrimSpace(c.Fetcher.UserAgent) == "" {
		c.Fetcher.UserAgent = defaultUserAgent
	}
	if c.Fetcher.ConcurrentFragments <= 0 {
		c.Fetcher.ConcurrentFragments = defaultConcurrentFragments
	}
}

func (c *Config) normalizeAccelerator() {
	if strings.TrimSpace(c.Accelerator.Binary) == "" {
		c.Accelerator.Binary = defaultAcceleratorBinary
	}
	c.Accelerator.Preference = strings.ToLower(strings.TrimSpace(c.Accelerator.Preference))
	if c.Accelerator.Preference == "" {
		c.Accelerator.Preference = defaultAcceleratorPref
	}
	if c.Accelerator.Connections <= 0 {
		c.Accelerator.Connections = defaultAcceleratorConns
	}
	if strings.TrimSpace(c.Accelerator.ChunkSize) == "" {
		c.Accelerator.ChunkSize = defaultAcceleratorChunk
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers == 0 {
		c.Batch.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
