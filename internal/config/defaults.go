package config

const (
	defaultDataDir             = "~/.local/share/ecogenius"
	defaultLogDir              = "~/.local/share/ecogenius/logs"
	defaultServerBind          = "127.0.0.1:3001"
	defaultMaxUploadMB         = 10
	defaultReadTimeoutSeconds  = 15
	defaultWriteTimeoutSeconds = 90
	defaultLLMBaseURL          = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel            = "gpt-4o"
	defaultLLMReferer          = "https://github.com/ecogenius/ecogenius"
	defaultLLMTitle            = "EcoGenius"
	defaultLLMTimeoutSeconds   = 60
	defaultLLMTemperature      = 0.1
	defaultLLMMaxTokens        = 1000
	defaultImageHostFolder     = "ecogenius"
	defaultRelayBaseURL        = "http://localhost:3001/api"
	defaultRelayStrategy       = "multipart"
	defaultRelayTimeoutSeconds = 30
	defaultCaptureTimeout      = 10
	defaultCaptureJPEGQuality  = 80
	defaultCaptureIdealWidth   = 1280
	defaultCaptureIdealHeight  = 720
	defaultBillboardBackend    = "local"
	defaultBillboardTimeout    = 10
	defaultBillboardCooldown   = 5
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Server: Server{
			Bind:               defaultServerBind,
			AllowedOrigins:     []string{"*"},
			MaxUploadMB:        defaultMaxUploadMB,
			ReadTimeoutSeconds: defaultReadTimeoutSeconds,
			WriteTimeoutSecond: defaultWriteTimeoutSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			Temperature:    defaultLLMTemperature,
			MaxTokens:      defaultLLMMaxTokens,
		},
		ImageHost: ImageHost{
			Folder: defaultImageHostFolder,
		},
		Relay: Relay{
			BaseURL:        defaultRelayBaseURL,
			Strategy:       defaultRelayStrategy,
			TimeoutSeconds: defaultRelayTimeoutSeconds,
		},
		Capture: Capture{
			TimeoutSeconds: defaultCaptureTimeout,
			JPEGQuality:    defaultCaptureJPEGQuality,
			IdealWidth:     defaultCaptureIdealWidth,
			IdealHeight:    defaultCaptureIdealHeight,
		},
		Billboard: Billboard{
			Backend:         defaultBillboardBackend,
			TimeoutSeconds:  defaultBillboardTimeout,
			CooldownSeconds: defaultBillboardCooldown,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			NewPosts:       true,
			Responses:      false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
