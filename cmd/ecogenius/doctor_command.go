package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecogenius/internal/notifications"
)

const doctorProbeTimeout = 20 * time.Second

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var (
		probe  bool
		notify bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and external services",
		Long: "Report which features are configured. With --probe the classification\n" +
			"API is called once to verify the key and model. With --notify a test\n" +
			"notification is sent to the configured ntfy topic.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := false

			printLines(out, renderSectionHeader("Configuration", colorize))
			fmt.Fprintln(out, renderStatusLine("Data dir", statusInfo, cfg.Paths.DataDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Server", statusInfo, cfg.Server.Bind, colorize))
			fmt.Fprintln(out, renderStatusLine("API token", statusInfo, yesNo(cfg.Server.APIToken != ""), colorize))
			fmt.Fprintln(out)

			printLines(out, renderSectionHeader("Services", colorize))
			switch {
			case cfg.GetLLM().APIKey == "":
				fmt.Fprintln(out, renderStatusLine("Classification", statusError, "llm.api_key not set", colorize))
				failed = true
			case probe:
				probeCtx, cancel := context.WithTimeout(cmd.Context(), doctorProbeTimeout)
				err := ctx.llmClient().HealthCheck(probeCtx)
				cancel()
				if err != nil {
					fmt.Fprintln(out, renderStatusLine("Classification", statusError, err.Error(), colorize))
					failed = true
				} else {
					fmt.Fprintln(out, renderStatusLine("Classification", statusOK, cfg.LLM.Model, colorize))
				}
			default:
				fmt.Fprintln(out, renderStatusLine("Classification", statusOK, cfg.LLM.Model+" (not probed)", colorize))
			}

			if cfg.ImageHostConfigured() {
				fmt.Fprintln(out, renderStatusLine("Image host", statusOK, cfg.ImageHost.CloudName, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Image host", statusWarn, "uploads disabled on this server", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Upload relay", statusInfo,
				fmt.Sprintf("%s (%s)", cfg.Relay.BaseURL, cfg.Relay.Strategy), colorize))

			if cfg.Capture.BackURL != "" || cfg.Capture.FrontURL != "" {
				fmt.Fprintln(out, renderStatusLine("Camera", statusOK, "snapshot device configured", colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Camera", statusInfo, "not configured", colorize))
			}

			if billboardLine, ok := checkBillboard(cmd, ctx); ok {
				fmt.Fprintln(out, renderStatusLine("Billboard", statusOK, billboardLine, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Billboard", statusError, billboardLine, colorize))
				failed = true
			}

			if cfg.Analytics.SummaryCSV == "" || cfg.Analytics.DetailCSV == "" {
				fmt.Fprintln(out, renderStatusLine("Analytics", statusWarn, "using built-in figures", colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Analytics", statusOK, "CSV datasets configured", colorize))
			}

			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(out, renderStatusLine("Notifications", statusInfo, "disabled", colorize))
			} else if notify {
				if err := sendTestNotification(cmd.Context(), ctx); err != nil {
					fmt.Fprintln(out, renderStatusLine("Notifications", statusError, err.Error(), colorize))
					failed = true
				} else {
					fmt.Fprintln(out, renderStatusLine("Notifications", statusOK, "test notification sent", colorize))
				}
			} else {
				fmt.Fprintln(out, renderStatusLine("Notifications", statusOK, cfg.Notifications.NtfyTopic, colorize))
			}

			if failed {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Call the classification API to verify credentials")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a test notification")
	return cmd
}

func checkBillboard(cmd *cobra.Command, ctx *commandContext) (string, bool) {
	backend, closeFn, err := ctx.boardBackend(cmd.Context())
	if err != nil {
		return err.Error(), false
	}
	defer closeFn()
	if p, ok := backend.(pinger); ok {
		if err := p.Ping(cmd.Context()); err != nil {
			return err.Error(), false
		}
		return "local database " + ctx.config.BillboardDBPath(), true
	}
	return "remote " + ctx.config.Billboard.RemoteURL, true
}

func sendTestNotification(ctx context.Context, cc *commandContext) error {
	svc := notifications.NewService(cc.config)
	return svc.Publish(ctx, notifications.EventTest, notifications.Payload{
		"message": "EcoGenius notifications are working",
	})
}

func printLines(out io.Writer, lines []string) {
	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
