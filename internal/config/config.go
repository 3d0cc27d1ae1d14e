package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Server contains configuration for the HTTP API and upload relay endpoint.
type Server struct {
	Bind               string   `toml:"bind"`
	APIToken           string   `toml:"api_token"`
	AllowedOrigins     []string `toml:"allowed_origins"`
	MaxUploadMB        int      `toml:"max_upload_mb"`
	ReadTimeoutSeconds int      `toml:"read_timeout_seconds"`
	WriteTimeoutSecond int      `toml:"write_timeout_seconds"`
}

// LLM contains the classification API connection settings.
type LLM struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Referer        string  `toml:"referer"`
	Title          string  `toml:"title"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
}

// ImageHost contains credentials for the cloud image host the relay forwards to.
type ImageHost struct {
	CloudName    string `toml:"cloud_name"`
	APIKey       string `toml:"api_key"`
	APISecret    string `toml:"api_secret"`
	Folder       string `toml:"folder"`
	UploadPrefix string `toml:"upload_prefix"`
}

// Relay contains client-side settings for reaching the upload relay.
type Relay struct {
	// BaseURL differs between local development and deployed environments,
	// e.g. http://localhost:3001/api versus an API gateway stage URL.
	BaseURL        string `toml:"base_url"`
	Strategy       string `toml:"strategy"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Capture contains settings for the snapshot camera device.
type Capture struct {
	FrontURL       string `toml:"front_url"`
	BackURL        string `toml:"back_url"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	JPEGQuality    int    `toml:"jpeg_quality"`
	IdealWidth     int    `toml:"ideal_width"`
	IdealHeight    int    `toml:"ideal_height"`
}

// Billboard contains configuration for the community billboard backend.
type Billboard struct {
	// Backend is "local" (sqlite hosted by this server) or "remote" (external REST API).
	Backend         string `toml:"backend"`
	RemoteURL       string `toml:"remote_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	CooldownSeconds int    `toml:"cooldown_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	NewPosts       bool   `toml:"new_posts"`
	Responses      bool   `toml:"responses"`
}

// Analytics points at the Victorian waste datasets used for charts.
type Analytics struct {
	SummaryCSV string `toml:"summary_csv"`
	DetailCSV  string `toml:"detail_csv"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for EcoGenius.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Server: API bind address, auth token, CORS and upload limits
//   - LLM: classification API connection
//   - ImageHost: Cloudinary credentials used by the upload relay
//   - Relay: how clients reach the upload relay
//   - Capture: snapshot camera endpoints
//   - Billboard: community post backend and submission cooldown
//   - Notifications: ntfy push notification settings
//   - Analytics: CSV dataset locations
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Server        Server        `toml:"server"`
	LLM           LLM           `toml:"llm"`
	ImageHost     ImageHost     `toml:"image_host"`
	Relay         Relay         `toml:"relay"`
	Capture       Capture       `toml:"capture"`
	Billboard     Billboard     `toml:"billboard"`
	Notifications Notifications `toml:"notifications"`
	Analytics     Analytics     `toml:"analytics"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ecogenius/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ecogenius.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BillboardDBPath returns the sqlite database used by the local billboard backend.
func (c *Config) BillboardDBPath() string {
	return filepath.Join(c.Paths.DataDir, "billboard.db")
}

// LockPath returns the lock file guarding a single running server instance.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "ecogenius.lock")
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the classification API connection settings.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	Temperature    float64
	MaxTokens      int
}

// GetLLM returns the classification API connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
		Temperature:    c.LLM.Temperature,
		MaxTokens:      c.LLM.MaxTokens,
	}
}

// ImageHostConfigured reports whether the relay has credentials to reach the image host.
func (c *Config) ImageHostConfigured() bool {
	return c.ImageHost.CloudName != "" && c.ImageHost.APIKey != "" && c.ImageHost.APISecret != ""
}
