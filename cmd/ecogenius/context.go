package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"ecogenius/internal/analytics"
	"ecogenius/internal/billboard"
	"ecogenius/internal/classify"
	"ecogenius/internal/config"
	"ecogenius/internal/logging"
	"ecogenius/internal/notifications"
	"ecogenius/internal/relay"
	"ecogenius/internal/search"
	"ecogenius/internal/services/llm"
)

// skipConfigLoad marks commands that run without a configuration file.
const skipConfigLoad = "skipConfigLoad"

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the process logger once. Logger failures fall back to a
// stderr console logger rather than aborting the command.
func (c *commandContext) loggerFor() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil)
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) llmClient() *llm.Client {
	l := c.config.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:         l.APIKey,
		BaseURL:        l.BaseURL,
		Model:          l.Model,
		Referer:        l.Referer,
		Title:          l.Title,
		TimeoutSeconds: l.TimeoutSeconds,
		Temperature:    l.Temperature,
		MaxTokens:      l.MaxTokens,
	})
}

func (c *commandContext) relayClient() *relay.Client {
	r := c.config.Relay
	return relay.NewClient(r.BaseURL, time.Duration(r.TimeoutSeconds)*time.Second,
		relay.WithStrategy(relay.Strategy(r.Strategy)))
}

// classifier wires relay upload and the model. Without an API key only the
// built-in tables are usable, so nil is returned.
func (c *commandContext) classifier() *classify.Service {
	if c.config.GetLLM().APIKey == "" {
		return nil
	}
	return classify.NewService(c.relayClient(), c.llmClient(), c.loggerFor())
}

func (c *commandContext) guide() *search.Guide {
	if svc := c.classifier(); svc != nil {
		return search.NewGuide(svc, c.loggerFor())
	}
	return search.NewGuide(nil, c.loggerFor())
}

// boardBackend opens the configured billboard backend. The returned close
// function is never nil.
func (c *commandContext) boardBackend(ctx context.Context) (billboard.Service, func(), error) {
	cfg := c.config.Billboard
	switch cfg.Backend {
	case "remote":
		if strings.TrimSpace(cfg.RemoteURL) == "" {
			return nil, func() {}, errors.New("billboard.remote_url is required for the remote backend")
		}
		client := billboard.NewRemoteClient(cfg.RemoteURL, time.Duration(cfg.TimeoutSeconds)*time.Second,
			billboard.WithBearerToken(c.config.Server.APIToken))
		return client, func() {}, nil
	default:
		store, err := billboard.OpenStore(ctx, c.config.BillboardDBPath())
		if err != nil {
			return nil, func() {}, fmt.Errorf("open billboard store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
}

func (c *commandContext) board(backend billboard.Service) *billboard.Board {
	cooldown := billboard.NewCooldown(time.Duration(c.config.Billboard.CooldownSeconds) * time.Second)
	return billboard.NewBoard(backend, c.loggerFor(),
		billboard.WithCooldown(cooldown),
		billboard.WithNotifier(notifications.NewService(c.config)),
	)
}

func (c *commandContext) analyticsSource() *analytics.Source {
	return analytics.NewSource(c.config.Analytics.SummaryCSV, c.config.Analytics.DetailCSV, c.loggerFor())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
