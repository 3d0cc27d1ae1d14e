package scanflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/logging"
	"ecogenius/internal/relay"
	"ecogenius/internal/scanflow"
	"ecogenius/internal/services/llm"
)

var photo = capture.Image{Name: "item.jpg", MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}

func TestHappyPath(t *testing.T) {
	m := scanflow.NewMachine()
	steps := []func() error{
		m.Start,
		func() error { return m.Captured(photo) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	gen, img, err := m.Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if img.Name != photo.Name || len(img.Data) != len(photo.Data) {
		t.Fatalf("analyzed image = %+v", img)
	}
	if !m.Complete(gen, classify.Result{ItemName: "Can"}) {
		t.Fatal("Complete rejected current generation")
	}
	snap := m.Snapshot()
	if snap.State != scanflow.StateResult || snap.Result.ItemName != "Can" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if err := m.Reset(); err != nil || m.State() != scanflow.StateIdle {
		t.Fatalf("Reset: %v state %s", err, m.State())
	}
}

func TestInvalidTransitions(t *testing.T) {
	m := scanflow.NewMachine()
	if err := m.Retake(); !errors.Is(err, scanflow.ErrInvalidTransition) {
		t.Fatalf("Retake from idle: %v", err)
	}
	if _, _, err := m.Analyze(); !errors.Is(err, scanflow.ErrInvalidTransition) {
		t.Fatalf("Analyze from idle: %v", err)
	}
	if err := m.Reset(); !errors.Is(err, scanflow.ErrInvalidTransition) {
		t.Fatalf("Reset from idle: %v", err)
	}
	if err := m.Captured(photo); !errors.Is(err, scanflow.ErrInvalidTransition) {
		t.Fatalf("Captured from idle: %v", err)
	}
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	m := scanflow.NewMachine()
	_ = m.Pick(photo)
	first, _, _ := m.Analyze()
	if err := m.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	second, _, err := m.Analyze()
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if m.Complete(first, classify.Result{ItemName: "old"}) {
		t.Fatal("stale completion accepted")
	}
	if m.Fail(first, errors.New("late")) {
		t.Fatal("stale failure accepted")
	}
	if !m.Complete(second, classify.Result{ItemName: "new"}) {
		t.Fatal("current completion rejected")
	}
	if got := m.Snapshot().Result.ItemName; got != "new" {
		t.Fatalf("result = %q", got)
	}
}

func TestUploadFailureReturnsToPreview(t *testing.T) {
	m := scanflow.NewMachine()
	_ = m.Pick(photo)
	gen, _, _ := m.Analyze()
	m.Fail(gen, &relay.UploadError{StatusCode: 500})
	snap := m.Snapshot()
	if snap.State != scanflow.StatePreviewing || snap.Message != relay.UserMessage {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Image == nil {
		t.Fatal("image should be kept for resend")
	}
}

func TestClassificationFailureThenRetry(t *testing.T) {
	m := scanflow.NewMachine()
	_ = m.Pick(photo)
	gen, _, _ := m.Analyze()
	m.Fail(gen, &llm.APIError{Kind: llm.KindQuota})
	snap := m.Snapshot()
	if snap.State != scanflow.StateError || snap.Message != llm.MessageQuota {
		t.Fatalf("snapshot = %+v", snap)
	}
	if err := m.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if m.State() != scanflow.StatePreviewing {
		t.Fatalf("state = %s", m.State())
	}
}

type fakeCamera struct {
	startErr error
	closed   bool
}

func (c *fakeCamera) Start(context.Context) error { return c.startErr }

func (c *fakeCamera) Shutter(context.Context) (capture.Image, error) {
	return photo, nil
}

func (c *fakeCamera) Close() { c.closed = true }

type fakeClassifier struct {
	result classify.Result
	err    error
}

func (f fakeClassifier) ClassifyImage(context.Context, capture.Image) (classify.Result, error) {
	return f.result, f.err
}

func TestRunnerScanCamera(t *testing.T) {
	r := scanflow.NewRunner(fakeClassifier{result: classify.Result{ItemName: "Bottle"}}, logging.NewNop())
	for i := 0; i < 2; i++ {
		result, err := r.ScanCamera(context.Background(), &fakeCamera{})
		if err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
		if result.ItemName != "Bottle" || r.Machine().State() != scanflow.StateResult {
			t.Fatalf("scan %d: result %+v state %s", i, result, r.Machine().State())
		}
	}
}

func TestRunnerCaptureErrorReturnsToIdle(t *testing.T) {
	r := scanflow.NewRunner(fakeClassifier{}, logging.NewNop())
	cam := &fakeCamera{startErr: &capture.Error{Kind: capture.KindPermissionDenied, Op: "open"}}
	if _, err := r.ScanCamera(context.Background(), cam); err == nil {
		t.Fatal("expected capture error")
	}
	snap := r.Machine().Snapshot()
	if snap.State != scanflow.StateIdle || snap.Message != "Unable to access camera. Please check permissions." {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !cam.closed {
		t.Fatal("camera should be released")
	}
}

type recordingClassifier struct {
	mu     sync.Mutex
	images []capture.Image
}

func (r *recordingClassifier) ClassifyImage(_ context.Context, img capture.Image) (classify.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images = append(r.images, img)
	return classify.Result{ItemName: "Bottle"}, nil
}

func TestRunnerAnalyzeRacingPick(t *testing.T) {
	classifier := &recordingClassifier{}
	for i := 0; i < 200; i++ {
		r := scanflow.NewRunner(classifier, logging.NewNop())
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Machine().Pick(photo)
		}()
		go func() {
			defer wg.Done()
			_, err := r.Analyze(context.Background())
			if err != nil && !errors.Is(err, scanflow.ErrInvalidTransition) {
				t.Errorf("Analyze: %v", err)
			}
		}()
		wg.Wait()
	}
	classifier.mu.Lock()
	defer classifier.mu.Unlock()
	for _, img := range classifier.images {
		if img.Name != photo.Name || len(img.Data) == 0 {
			t.Fatalf("classifier received %+v", img)
		}
	}
}
