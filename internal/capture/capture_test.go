package capture_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ecogenius/internal/capture"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 160, B: 90, A: 255})
		}
	}
	return img
}

type fakeTrack struct{ live bool }

func (t *fakeTrack) Stop()      { t.live = false }
func (t *fakeTrack) Live() bool { return t.live }

type fakeStream struct {
	facing capture.FacingMode
	tracks []*fakeTrack
	frame  image.Image
}

func (s *fakeStream) Frame(context.Context) (image.Image, error) { return s.frame, nil }

func (s *fakeStream) Tracks() []capture.Track {
	out := make([]capture.Track, len(s.tracks))
	for i, tr := range s.tracks {
		out[i] = tr
	}
	return out
}

type fakeDevice struct {
	opened []*fakeStream
	err    error
	// liveAtOpen records how many tracks were still live when Open was called.
	liveAtOpen []int
}

func (d *fakeDevice) Open(_ context.Context, c capture.Constraints) (capture.Stream, error) {
	live := 0
	for _, s := range d.opened {
		for _, tr := range s.tracks {
			if tr.Live() {
				live++
			}
		}
	}
	d.liveAtOpen = append(d.liveAtOpen, live)
	if d.err != nil {
		return nil, d.err
	}
	s := &fakeStream{
		facing: c.Facing,
		tracks: []*fakeTrack{{live: true}, {live: true}},
		frame:  solidImage(32, 24),
	}
	d.opened = append(d.opened, s)
	return s, nil
}

func TestSwitchStopsPreviousTracksBeforeOpening(t *testing.T) {
	device := &fakeDevice{}
	cam := capture.NewCamera(device)
	ctx := context.Background()

	if err := cam.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if cam.Facing() != capture.FacingEnvironment {
		t.Fatalf("expected environment facing by default, got %s", cam.Facing())
	}
	if err := cam.Switch(ctx); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if err := cam.Switch(ctx); err != nil {
		t.Fatalf("Switch: %v", err)
	}

	for i, live := range device.liveAtOpen {
		if live != 0 {
			t.Fatalf("open #%d saw %d live tracks from a previous stream", i, live)
		}
	}
	if device.opened[1].facing != capture.FacingUser || device.opened[2].facing != capture.FacingEnvironment {
		t.Fatalf("unexpected facing sequence: %s, %s", device.opened[1].facing, device.opened[2].facing)
	}

	cam.Close()
	for _, s := range device.opened {
		for _, tr := range s.tracks {
			if tr.Live() {
				t.Fatal("expected every track stopped after Close")
			}
		}
	}
}

func TestShutterEncodesJPEGAndReleasesStream(t *testing.T) {
	device := &fakeDevice{}
	fixed := time.UnixMilli(1700000000123)
	cam := capture.NewCamera(device, capture.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	if err := cam.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	img, err := cam.Shutter(ctx)
	if err != nil {
		t.Fatalf("Shutter: %v", err)
	}
	if img.Name != "recycling-item-1700000000123.jpg" {
		t.Fatalf("unexpected name %q", img.Name)
	}
	if img.MIMEType != "image/jpeg" {
		t.Fatalf("unexpected mime %q", img.MIMEType)
	}
	if _, err := jpeg.Decode(bytes.NewReader(img.Data)); err != nil {
		t.Fatalf("expected decodable jpeg: %v", err)
	}
	if cam.Live() {
		t.Fatal("expected stream released after capture")
	}
	if _, err := cam.Shutter(ctx); err == nil {
		t.Fatal("expected shutter without stream to fail")
	}
}

func TestStartPropagatesPermissionDenied(t *testing.T) {
	device := &fakeDevice{err: &capture.Error{Kind: capture.KindPermissionDenied, Op: "open"}}
	cam := capture.NewCamera(device)
	err := cam.Start(context.Background())
	var capErr *capture.Error
	if !errors.As(err, &capErr) || capErr.Kind != capture.KindPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if cam.Live() {
		t.Fatal("camera must not be live after failure")
	}
}

func TestStartWrapsUnknownDeviceErrors(t *testing.T) {
	cam := capture.NewCamera(&fakeDevice{err: errors.New("busy")})
	var capErr *capture.Error
	if err := cam.Start(context.Background()); !errors.As(err, &capErr) || capErr.Kind != capture.KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestFromFileRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textPath, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := capture.FromFile(textPath)
	var capErr *capture.Error
	if !errors.As(err, &capErr) || capErr.Kind != capture.KindUnsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(4, 4)); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "jar.png")
	if err := os.WriteFile(pngPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := capture.FromFile(pngPath)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if img.MIMEType != "image/png" || img.Name != "jar.png" {
		t.Fatalf("unexpected image: %s %s", img.Name, img.MIMEType)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := capture.FromFile(filepath.Join(t.TempDir(), "missing.jpg"))
	var capErr *capture.Error
	if !errors.As(err, &capErr) || capErr.Kind != capture.KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestHTTPSnapshotDevice(t *testing.T) {
	var frame bytes.Buffer
	if err := jpeg.Encode(&frame, solidImage(2560, 1440), nil); err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/back.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(frame.Bytes())
		case "/front.jpg":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	device := capture.NewHTTPSnapshotDevice(server.URL+"/front.jpg", server.URL+"/back.jpg", "", "", time.Second)
	cam := capture.NewCamera(device)
	ctx := context.Background()

	if err := cam.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	img, err := cam.Shutter(ctx)
	if err != nil {
		t.Fatalf("Shutter: %v", err)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() > 1280 || decoded.Bounds().Dy() > 720 {
		t.Fatalf("expected frame fit to 1280x720, got %v", decoded.Bounds())
	}

	if err := cam.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	err = cam.Switch(ctx)
	var capErr *capture.Error
	if !errors.As(err, &capErr) || capErr.Kind != capture.KindPermissionDenied {
		t.Fatalf("expected permission denied for front camera, got %v", err)
	}
	if !strings.Contains(capErr.UserMessage(), "permissions") {
		t.Fatalf("unexpected user message %q", capErr.UserMessage())
	}
}
