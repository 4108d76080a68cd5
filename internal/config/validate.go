package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Validation failures are
// the only process-fatal conditions; they surface before any job runs.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAccelerator(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateFetcher(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFetcher() error {
	if c.Fetcher.FetchTimeout < 0 {
		return errors.New("fetcher.fetch_timeout must not be negative")
	}
	if c.Fetcher.ProbeTimeout < 0 {
		return errors.New("fetcher.probe_timeout must not be negative")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ManifestDir == "" {
		return errors.New("paths.manifest_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateAccelerator() error {
	switch c.Accelerator.Preference {
	case "auto", "disabled", "preferred", "forced":
		return nil
	default:
		return fmt.Errorf("accelerator.preference: unknown value %q (want auto, disabled, preferred, or forced)", c.Accelerator.Preference)
	}
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	if c.Batch.Retries < 0 {
		return errors.New("batch.retries must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unknown value %q (want console or json)", c.Logging.Format)
	}
}
