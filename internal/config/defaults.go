package config

const (
	defaultWorkDir      = "~/.cache/gifify/work"
	defaultLogDir       = "~/.local/share/gifify/logs"
	defaultUIBind       = "127.0.0.1:8765"
	defaultFPS          = 12.0
	defaultMaxWidth     = 480
	defaultColors       = 256
	defaultDither       = "sierra2_4a"
	defaultLoop         = 0
	defaultFFmpeg       = "ffmpeg"
	defaultGifsicle     = "gifsicle"
	defaultFFprobe      = "ffprobe"
	defaultMaxUploadMiB = 512
	defaultHistoryLimit = 50
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
			UIBind:  defaultUIBind,
		},
		Defaults: Defaults{
			FPS:      defaultFPS,
			MaxWidth: defaultMaxWidth,
			Colors:   defaultColors,
			Dither:   defaultDither,
			Loop:     defaultLoop,
		},
		Tools: Tools{
			FFmpeg:   defaultFFmpeg,
			Gifsicle: defaultGifsicle,
			FFprobe:  defaultFFprobe,
		},
		UI: UI{
			MaxUploadMiB: defaultMaxUploadMiB,
			HistoryLimit: defaultHistoryLimit,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
