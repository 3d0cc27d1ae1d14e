package scanflow

import (
	"context"
	"log/slog"

	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/logging"
)

// Camera is the part of capture.Camera the runner needs.
type Camera interface {
	Start(ctx context.Context) error
	Shutter(ctx context.Context) (capture.Image, error)
	Close()
}

// Classifier is the part of classify.Service the runner needs.
type Classifier interface {
	ClassifyImage(ctx context.Context, img capture.Image) (classify.Result, error)
}

// Runner drives one machine through complete scans.
type Runner struct {
	machine    *Machine
	classifier Classifier
	logger     *slog.Logger
}

// NewRunner wires a runner around a fresh machine.
func NewRunner(classifier Classifier, logger *slog.Logger) *Runner {
	return &Runner{
		machine:    NewMachine(),
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "scanflow"),
	}
}

// Machine exposes the underlying state machine.
func (r *Runner) Machine() *Machine { return r.machine }

// ready returns a finished scan to Idle so the next one can begin.
func (r *Runner) ready() {
	switch r.machine.State() {
	case StateResult, StateError:
		_ = r.machine.Reset()
	}
}

// Capture opens cam, takes one picture and leaves the machine in Previewing.
func (r *Runner) Capture(ctx context.Context, cam Camera) (capture.Image, error) {
	r.ready()
	if err := r.machine.Start(); err != nil {
		return capture.Image{}, err
	}
	if err := cam.Start(ctx); err != nil {
		cam.Close()
		_ = r.machine.CaptureFailed(err)
		return capture.Image{}, err
	}
	img, err := cam.Shutter(ctx)
	if err != nil {
		cam.Close()
		_ = r.machine.CaptureFailed(err)
		return capture.Image{}, err
	}
	if err := r.machine.Captured(img); err != nil {
		return capture.Image{}, err
	}
	r.logger.Debug("image captured", logging.String("name", img.Name), logging.Int("bytes", img.Size()))
	return img, nil
}

// Analyze classifies the previewed image.
func (r *Runner) Analyze(ctx context.Context) (classify.Result, error) {
	gen, img, err := r.machine.Analyze()
	if err != nil {
		return classify.Result{}, err
	}
	result, err := r.classifier.ClassifyImage(ctx, img)
	if err != nil {
		if !r.machine.Fail(gen, err) {
			r.logger.Debug("dropped stale failure", logging.Int64("generation", int64(gen)))
		}
		return classify.Result{}, err
	}
	if !r.machine.Complete(gen, result) {
		r.logger.Debug("dropped stale result", logging.Int64("generation", int64(gen)))
		return classify.Result{}, context.Canceled
	}
	return result, nil
}

// ScanCamera runs capture then analysis.
func (r *Runner) ScanCamera(ctx context.Context, cam Camera) (classify.Result, error) {
	if _, err := r.Capture(ctx, cam); err != nil {
		return classify.Result{}, err
	}
	return r.Analyze(ctx)
}

// ScanImage runs analysis for a picked file.
func (r *Runner) ScanImage(ctx context.Context, img capture.Image) (classify.Result, error) {
	r.ready()
	if err := r.machine.Pick(img); err != nil {
		return classify.Result{}, err
	}
	return r.Analyze(ctx)
}
