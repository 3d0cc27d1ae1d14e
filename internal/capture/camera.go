package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// FacingMode selects the front or back camera.
type FacingMode string

const (
	FacingUser        FacingMode = "user"
	FacingEnvironment FacingMode = "environment"
)

// Toggle returns the opposite facing mode.
func (f FacingMode) Toggle() FacingMode {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// Constraints requests a stream from a Device.
type Constraints struct {
	Facing      FacingMode
	IdealWidth  int
	IdealHeight int
}

// Track is one media track of an open stream.
type Track interface {
	Stop()
	Live() bool
}

// Stream is an open camera stream.
type Stream interface {
	Frame(ctx context.Context) (image.Image, error)
	Tracks() []Track
}

// Device opens camera streams. Implementations return *Error with
// KindPermissionDenied or KindUnavailable when access fails.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// DefaultJPEGQuality matches the 0.8 quality used for captured photos.
const DefaultJPEGQuality = 80

// CameraOption customizes a Camera.
type CameraOption func(*Camera)

// WithJPEGQuality overrides the encode quality (1-100).
func WithJPEGQuality(q int) CameraOption {
	return func(c *Camera) {
		if q >= 1 && q <= 100 {
			c.quality = q
		}
	}
}

// WithResolution overrides the ideal resolution requested from the device.
func WithResolution(width, height int) CameraOption {
	return func(c *Camera) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithFacing sets the initial facing mode.
func WithFacing(f FacingMode) CameraOption {
	return func(c *Camera) {
		if f == FacingUser || f == FacingEnvironment {
			c.facing = f
		}
	}
}

// WithClock overrides the clock used to name captured files.
func WithClock(now func() time.Time) CameraOption {
	return func(c *Camera) {
		if now != nil {
			c.now = now
		}
	}
}

// Camera holds at most one open stream at a time.
type Camera struct {
	mu      sync.Mutex
	device  Device
	stream  Stream
	facing  FacingMode
	width   int
	height  int
	quality int
	now     func() time.Time
}

// NewCamera constructs a camera facing the environment at 1280x720.
func NewCamera(device Device, opts ...CameraOption) *Camera {
	c := &Camera{
		device:  device,
		facing:  FacingEnvironment,
		width:   1280,
		height:  720,
		quality: DefaultJPEGQuality,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Facing returns the current facing mode.
func (c *Camera) Facing() FacingMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

// Live reports whether a stream is open.
func (c *Camera) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil
}

// Start acquires a stream with the current facing mode. Starting a live camera is a no-op.
func (c *Camera) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

func (c *Camera) startLocked(ctx context.Context) error {
	if c.stream != nil {
		return nil
	}
	if c.device == nil {
		return newError(KindUnavailable, "start", errors.New("no camera device configured"))
	}
	stream, err := c.device.Open(ctx, Constraints{Facing: c.facing, IdealWidth: c.width, IdealHeight: c.height})
	if err != nil {
		var capErr *Error
		if errors.As(err, &capErr) {
			return capErr
		}
		return newError(KindUnavailable, "start", err)
	}
	c.stream = stream
	return nil
}

// Shutter grabs the current frame as a JPEG and releases the stream.
func (c *Camera) Shutter(ctx context.Context) (Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return Image{}, newError(KindUnavailable, "shutter", errors.New("camera not started"))
	}
	frame, err := c.stream.Frame(ctx)
	if err != nil {
		c.stopLocked()
		var capErr *Error
		if errors.As(err, &capErr) {
			return Image{}, capErr
		}
		return Image{}, newError(KindUnavailable, "shutter", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		c.stopLocked()
		return Image{}, newError(KindUnsupported, "encode", err)
	}
	c.stopLocked()
	return Image{
		Name:     fmt.Sprintf("recycling-item-%d.jpg", c.now().UnixMilli()),
		MIMEType: "image/jpeg",
		Data:     buf.Bytes(),
	}, nil
}

// Switch toggles the facing mode. Every track of the previous stream is
// stopped before the new stream is requested.
func (c *Camera) Switch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.facing = c.facing.Toggle()
	return c.startLocked(ctx)
}

// Close stops all tracks.
func (c *Camera) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Camera) stopLocked() {
	if c.stream == nil {
		return
	}
	for _, track := range c.stream.Tracks() {
		track.Stop()
	}
	c.stream = nil
}
