package config

const (
	defaultInstallDir         = "~/.local/share/upscale/realesrgan"
	defaultCommand            = "realesrgan-ncnn-vulkan"
	defaultModel              = "realesrgan-x4plus"
	defaultFactor             = Factor4K
	defaultWorkers            = 2
	defaultPollIntervalMillis = 1000
	defaultLockTimeoutSeconds = 0
	defaultInstallBaseURL     = "https://github.com/xinntao/Real-ESRGAN/releases/download/v0.2.5.0"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	lockFileName              = "upscale-tool.lock"
)

// Supported upscale factors.
const (
	Factor4K = "4k"
	Factor8K = "8k"
)

// Environment variables that override file values.
const (
	EnvInstallPath = "UPSCALE_INSTALL_PATH"
	EnvCommand     = "UPSCALE_COMMAND"
	EnvFactor      = "UPSCALE_FACTOR"
	EnvModel       = "UPSCALE_MODEL"
)

func defaultExtensions() []string {
	return []string{".png", ".jpg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InstallDir: defaultInstallDir,
		},
		Tool: Tool{
			Command: defaultCommand,
			Model:   defaultModel,
			Factor:  defaultFactor,
		},
		Discovery: Discovery{
			Extensions: defaultExtensions(),
		},
		Runner: Runner{
			Workers:            defaultWorkers,
			PollIntervalMillis: defaultPollIntervalMillis,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Install: Install{
			BaseURL:   defaultInstallBaseURL,
			Checksums: map[string]string{},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
