package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
)

// HTTPSnapshotDevice reads frames from IP camera snapshot endpoints, one URL per facing mode.
type HTTPSnapshotDevice struct {
	FrontURL string
	BackURL  string
	Username string
	Password string
	Client   *http.Client
}

// NewHTTPSnapshotDevice builds a device with a bounded request timeout.
func NewHTTPSnapshotDevice(frontURL, backURL, username, password string, timeout time.Duration) *HTTPSnapshotDevice {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSnapshotDevice{
		FrontURL: strings.TrimSpace(frontURL),
		BackURL:  strings.TrimSpace(backURL),
		Username: username,
		Password: password,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Open probes the snapshot URL for the requested facing mode.
func (d *HTTPSnapshotDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	url := d.BackURL
	if c.Facing == FacingUser {
		url = d.FrontURL
	}
	if url == "" {
		return nil, newError(KindUnavailable, "open", fmt.Errorf("no snapshot url for %s camera", c.Facing))
	}
	stream := &snapshotStream{device: d, url: url, constraints: c, track: &snapshotTrack{}}
	stream.track.live.Store(true)
	if _, err := stream.Frame(ctx); err != nil {
		stream.track.Stop()
		return nil, err
	}
	return stream, nil
}

func (d *HTTPSnapshotDevice) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

type snapshotTrack struct {
	live atomic.Bool
}

func (t *snapshotTrack) Stop()      { t.live.Store(false) }
func (t *snapshotTrack) Live() bool { return t.live.Load() }

type snapshotStream struct {
	device      *HTTPSnapshotDevice
	url         string
	constraints Constraints
	track       *snapshotTrack
}

func (s *snapshotStream) Tracks() []Track { return []Track{s.track} }

func (s *snapshotStream) Frame(ctx context.Context) (image.Image, error) {
	if !s.track.Live() {
		return nil, newError(KindUnavailable, "frame", errors.New("stream stopped"))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, newError(KindUnavailable, "frame", err)
	}
	if s.device.Username != "" {
		req.SetBasicAuth(s.device.Username, s.device.Password)
	}
	resp, err := s.device.client().Do(req)
	if err != nil {
		return nil, newError(KindUnavailable, "frame", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, newError(KindPermissionDenied, "frame", fmt.Errorf("snapshot returned %s", resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, newError(KindUnavailable, "frame", fmt.Errorf("snapshot returned %s", resp.Status))
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, newError(KindUnsupported, "decode", err)
	}
	return fitIdeal(img, s.constraints.IdealWidth, s.constraints.IdealHeight), nil
}

// fitIdeal scales frames larger than the ideal resolution down, keeping aspect ratio.
func fitIdeal(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= width && bounds.Dy() <= height {
		return img
	}
	return imaging.Fit(img, width, height, imaging.Lanczos)
}
