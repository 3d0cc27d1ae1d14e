package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ecogenius/internal/billboard"
	"ecogenius/internal/logging"
	"ecogenius/internal/relay"
	"ecogenius/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and upload relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			logger := ctx.loggerFor()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			deps := server.Deps{
				Guide:     ctx.guide(),
				Analytics: ctx.analyticsSource(),
				Version:   version,
			}

			if cfg.ImageHostConfigured() {
				host, err := relay.NewCloudinaryHost(relay.CloudinaryConfig{
					CloudName:    cfg.ImageHost.CloudName,
					APIKey:       cfg.ImageHost.APIKey,
					APISecret:    cfg.ImageHost.APISecret,
					Folder:       cfg.ImageHost.Folder,
					UploadPrefix: cfg.ImageHost.UploadPrefix,
				})
				if err != nil {
					return fmt.Errorf("image host: %w", err)
				}
				deps.Upload = relay.NewHandler(host, cfg.MaxUploadBytes(), logger)
			} else {
				logging.WarnWithContext(logger, "image host not configured; /api/upload disabled",
					"image_host_missing", "set [image_host] or CLOUDINARY_URL")
			}
			if svc := ctx.classifier(); svc != nil {
				deps.Classifier = svc
			} else {
				logging.WarnWithContext(logger, "llm api key not configured; /api/classify disabled",
					"llm_key_missing", "set llm.api_key or OPENAI_API_KEY")
			}

			backend, closeBackend, err := ctx.boardBackend(signalCtx)
			if err != nil {
				return err
			}
			defer closeBackend()
			deps.Board = ctx.board(backend)
			if aliases, err := billboard.NewAliasGenerator(); err == nil {
				deps.Aliases = aliases
			}
			deps.Checks = healthChecks(ctx, backend)

			err = server.New(cfg, deps, logger).Run(signalCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind (host:port)")
	return cmd
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthChecks(ctx *commandContext, backend billboard.Service) []server.HealthCheck {
	cfg := ctx.config
	checks := []server.HealthCheck{
		{
			Name:        "llm",
			Description: "Classification API credentials",
			Check: func(context.Context) error {
				if cfg.GetLLM().APIKey == "" {
					return errors.New("api key not configured")
				}
				return nil
			},
		},
		{
			Name:        "image_host",
			Description: "Cloudinary credentials for the upload relay",
			Check: func(context.Context) error {
				if !cfg.ImageHostConfigured() {
					return errors.New("credentials not configured")
				}
				return nil
			},
		},
		{
			Name:        "notifications",
			Description: "ntfy topic for billboard alerts",
			Optional:    true,
			Check: func(context.Context) error {
				if cfg.Notifications.NtfyTopic == "" {
					return errors.New("ntfy_topic not configured")
				}
				return nil
			},
		},
	}
	if p, ok := backend.(pinger); ok {
		checks = append(checks, server.HealthCheck{
			Name:        "billboard",
			Description: "Local billboard database",
			Check:       p.Ping,
		})
	}
	return checks
}
