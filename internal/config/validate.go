package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateRelay(); err != nil {
		return err
	}
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateBillboard(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.MaxUploadMB < 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSecond < 0 {
		return errors.New("server timeouts must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if err := ensurePositiveMap(map[string]int{
		"llm.timeout_seconds": c.LLM.TimeoutSeconds,
		"llm.max_tokens":      c.LLM.MaxTokens,
	}); err != nil {
		return err
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if _, err := url.ParseRequestURI(c.LLM.BaseURL); err != nil {
		return fmt.Errorf("llm.base_url is not a valid URL: %w", err)
	}
	return nil
}

// RequireLLMKey reports a helpful error when no classification API key is available.
func (c *Config) RequireLLMKey() error {
	if c.LLM.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/ecogenius/config.toml"
	}
	return fmt.Errorf("llm.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'ecogenius config init')", defaultPath)
}

func (c *Config) validateRelay() error {
	switch c.Relay.Strategy {
	case "multipart", "base64":
	default:
		return fmt.Errorf("relay.strategy must be multipart or base64, got %q", c.Relay.Strategy)
	}
	if c.Relay.TimeoutSeconds <= 0 {
		return errors.New("relay.timeout_seconds must be positive")
	}
	if _, err := url.ParseRequestURI(c.Relay.BaseURL); err != nil {
		return fmt.Errorf("relay.base_url is not a valid URL: %w", err)
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return errors.New("capture.jpeg_quality must be between 1 and 100")
	}
	return ensurePositiveMap(map[string]int{
		"capture.timeout_seconds": c.Capture.TimeoutSeconds,
		"capture.ideal_width":     c.Capture.IdealWidth,
		"capture.ideal_height":    c.Capture.IdealHeight,
	})
}

func (c *Config) validateBillboard() error {
	switch c.Billboard.Backend {
	case "local":
	case "remote":
		if c.Billboard.RemoteURL == "" {
			return errors.New("billboard.remote_url is required when billboard.backend is remote")
		}
	default:
		return fmt.Errorf("billboard.backend must be local or remote, got %q", c.Billboard.Backend)
	}
	if c.Billboard.CooldownSeconds < 0 {
		return errors.New("billboard.cooldown_seconds must be zero or positive")
	}
	if c.Billboard.TimeoutSeconds <= 0 {
		return errors.New("billboard.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
