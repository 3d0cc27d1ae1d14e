package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecogenius/internal/advice"
	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/scanflow"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut   bool
		useCamera bool
		front     bool
	)

	cmd := &cobra.Command{
		Use:   "classify [image-path | image-url]",
		Short: "Identify an item and the bin it belongs in",
		Long: "Classify a photo from disk, an already hosted image URL, or a snapshot\n" +
			"from the camera configured in [capture] (--camera).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ctx.classifier()
			if svc == nil {
				return ctx.config.RequireLLMKey()
			}
			logger := ctx.loggerFor()
			runner := scanflow.NewRunner(svc, logger)

			var (
				result classify.Result
				err    error
			)
			switch {
			case useCamera:
				cam, camErr := ctx.camera(front)
				if camErr != nil {
					return camErr
				}
				result, err = runner.ScanCamera(cmd.Context(), cam)
			case len(args) == 0:
				return errors.New("provide an image path or URL, or use --camera")
			case strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://"):
				result, err = svc.ClassifyURL(cmd.Context(), classify.Request{ImageURL: args[0]})
			default:
				img, readErr := capture.FromFile(args[0])
				if readErr != nil {
					return errors.New(classify.UserMessage(readErr))
				}
				result, err = runner.ScanImage(cmd.Context(), img)
			}
			if err != nil {
				return fmt.Errorf("%s (%w)", classify.UserMessage(err), err)
			}

			card := advice.Build(result, advice.Options{})
			if jsonOut {
				return writeJSON(cmd, struct {
					Result classify.Result `json:"result"`
					Card   advice.Card     `json:"card"`
				}{result, card})
			}
			out := cmd.OutOrStdout()
			return advice.RenderText(out, card, shouldColorize(out))
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the raw result and card as JSON")
	cmd.Flags().BoolVar(&useCamera, "camera", false, "Capture from the configured snapshot camera")
	cmd.Flags().BoolVar(&front, "front", false, "Use the front-facing camera with --camera")
	return cmd
}

func (c *commandContext) camera(front bool) (*capture.Camera, error) {
	cfg := c.config.Capture
	if cfg.FrontURL == "" && cfg.BackURL == "" {
		return nil, errors.New("no camera configured; set capture.back_url or capture.front_url")
	}
	device := capture.NewHTTPSnapshotDevice(cfg.FrontURL, cfg.BackURL, cfg.Username, cfg.Password,
		time.Duration(cfg.TimeoutSeconds)*time.Second)
	facing := capture.FacingEnvironment
	if front {
		facing = capture.FacingUser
	}
	return capture.NewCamera(device,
		capture.WithFacing(facing),
		capture.WithResolution(cfg.IdealWidth, cfg.IdealHeight),
		capture.WithJPEGQuality(cfg.JPEGQuality),
	), nil
}
