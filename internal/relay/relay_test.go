package relay_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"ecogenius/internal/capture"
	"ecogenius/internal/relay"
)

type memoryHost struct {
	mu     sync.Mutex
	stored []relay.Asset
	err    error
}

func (h *memoryHost) Store(_ context.Context, asset relay.Asset) (relay.Hosted, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return relay.Hosted{}, h.err
	}
	h.stored = append(h.stored, asset)
	return relay.Hosted{URL: "https://img.example/ecogenius/item.jpg", PublicID: "ecogenius/item"}, nil
}

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func multipartRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "jar.jpg")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(data)
	_ = writer.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHandlerMultipartReturnsURL(t *testing.T) {
	host := &memoryHost{}
	h := relay.NewHandler(host, 0, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "file", jpegBytes))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["url"] != "https://img.example/ecogenius/item.jpg" {
		t.Fatalf("unexpected url %q", body["url"])
	}
	if _, ok := body["secure_url"]; ok {
		t.Fatal("multipart response should only carry url")
	}
	if len(host.stored) != 1 || !bytes.Equal(host.stored[0].Data, jpegBytes) {
		t.Fatalf("unexpected stored assets: %+v", host.stored)
	}
}

func TestHandlerBase64ReturnsCanonicalURL(t *testing.T) {
	host := &memoryHost{}
	h := relay.NewHandler(host, 0, nil)
	payload, _ := json.Marshal(map[string]string{"file": relay.EncodeDataURL("image/jpeg", jpegBytes)})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["url"] == "" || body["url"] != body["secure_url"] {
		t.Fatalf("expected url and secure_url to match, got %v", body)
	}
	if !bytes.Equal(host.stored[0].Data, jpegBytes) {
		t.Fatal("expected decoded bytes forwarded to host")
	}
}

func TestHandlerNoFile(t *testing.T) {
	h := relay.NewHandler(&memoryHost{}, 0, nil)
	cases := map[string]*http.Request{
		"empty json":      jsonRequest(`{}`),
		"blank json file": jsonRequest(`{"file":""}`),
		"empty body":      jsonRequest(``),
		"other field":     multipartRequest(t, "photo", jpegBytes),
		"no content type": httptest.NewRequest(http.MethodPost, "/api/upload", nil),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if body := decodeBody(t, w); body["error"] != "No file provided" {
				t.Fatalf("unexpected error %q", body["error"])
			}
		})
	}
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandlerRejectsOversizeUpload(t *testing.T) {
	host := &memoryHost{}
	h := relay.NewHandler(host, 64, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "file", bytes.Repeat([]byte{0xAB}, 4096)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if len(host.stored) != 0 {
		t.Fatal("oversize upload must not reach the host")
	}
}

func TestHandlerHostFailure(t *testing.T) {
	h := relay.NewHandler(&memoryHost{err: errors.New("cloud down")}, 0, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "file", jpegBytes))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Upload failed" {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestClientRoundTripBothStrategies(t *testing.T) {
	host := &memoryHost{}
	mux := http.NewServeMux()
	mux.Handle("/api/upload", relay.NewHandler(host, 0, nil))
	server := httptest.NewServer(mux)
	defer server.Close()

	img := capture.Image{Name: "jar.jpg", MIMEType: "image/jpeg", Data: jpegBytes}
	for _, strategy := range []relay.Strategy{relay.StrategyMultipart, relay.StrategyBase64} {
		client := relay.NewClient(server.URL+"/api/", 0, relay.WithStrategy(strategy))
		url, err := client.Upload(context.Background(), img)
		if err != nil {
			t.Fatalf("%s upload: %v", strategy, err)
		}
		if url != "https://img.example/ecogenius/item.jpg" {
			t.Fatalf("%s: unexpected url %q", strategy, url)
		}
	}
	if len(host.stored) != 2 {
		t.Fatalf("expected two stored assets, got %d", len(host.stored))
	}
}

func TestClientAcceptsSecureURLOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example/legacy.jpg"}`))
	}))
	defer server.Close()

	url, err := relay.NewClient(server.URL, 0).Upload(context.Background(), capture.Image{Data: jpegBytes})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://img.example/legacy.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestClientFailuresAreUploadErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"Upload failed"}`},
		{"empty url", http.StatusOK, `{"url":""}`},
		{"not json", http.StatusOK, `ok`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := relay.NewClient(server.URL, 0).Upload(context.Background(), capture.Image{Data: jpegBytes})
			var upErr *relay.UploadError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UploadError, got %v", err)
			}
			if calls != 1 {
				t.Fatalf("expected exactly one attempt, got %d", calls)
			}
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	data, err := relay.DecodeDataURL(relay.EncodeDataURL("image/png", []byte("abc")))
	if err != nil || string(data) != "abc" {
		t.Fatalf("unexpected decode: %q %v", data, err)
	}
	if _, err := relay.DecodeDataURL("data:image/png,abc"); err == nil {
		t.Fatal("expected non-base64 data URL to fail")
	}
	if _, err := relay.DecodeDataURL("!!!"); err == nil {
		t.Fatal("expected invalid base64 to fail")
	}
}
