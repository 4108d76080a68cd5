package config

const (
	defaultManifestDir         = "urls"
	defaultOutputDir           = "videos"
	defaultLogDir              = "~/.local/share/spool/logs"
	defaultArchiveName         = "downloaded.txt"
	defaultFetcherBinary       = "yt-dlp"
	defaultProbeTimeout        = 60
	defaultUserAgent           = "Mozilla/5.0"
	defaultConcurrentFragments = 10
	defaultAcceleratorBinary   = "aria2c"
	defaultAcceleratorPref     = "auto"
	defaultAcceleratorConns    = 4
	defaultAcceleratorChunk    = "1M"
	defaultWorkers             = 2
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ManifestDir: defaultManifestDir,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
		},
		Fetcher: Fetcher{
			Binary:              defaultFetcherBinary,
			ProbeTimeout:        defaultProbeTimeout,
			UserAgent:           defaultUserAgent,
			ConcurrentFragments: defaultConcurrentFragments,
		},
		Accelerator: Accelerator{
			Binary:      defaultAcceleratorBinary,
			Preference:  defaultAcceleratorPref,
			Connections: defaultAcceleratorConns,
			ChunkSize:   defaultAcceleratorChunk,
		},
		Batch: Batch{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
