package config

const (
	defaultOutputDir   = "~/.local/share/cuemix/output"
	defaultAssetDir    = "~/.local/share/cuemix/assets"
	defaultLogDir      = "~/.local/share/cuemix/logs"
	defaultHistoryPath = "~/.local/share/cuemix/history.db"
	defaultSFXBuses    = 2
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			AssetDir:  defaultAssetDir,
			LogDir:    defaultLogDir,
		},
		Assembly: Assembly{
			SFXBuses:     defaultSFXBuses,
			WritePreview: true,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
