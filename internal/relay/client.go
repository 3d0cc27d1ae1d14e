package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"ecogenius/internal/capture"
)

// Strategy selects the upload transport.
type Strategy string

const (
	StrategyMultipart Strategy = "multipart"
	StrategyBase64    Strategy = "base64"
)

// UploadError reports that the relay did not yield a URL. Uploads are not retried.
type UploadError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UploadError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{"upload failed"}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status %d", e.StatusCode))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *UploadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage is the text shown when the upload step fails.
const UserMessage = "Failed to upload file. Please try again."

// Client posts images to the relay endpoint.
type Client struct {
	endpoint   string
	strategy   Strategy
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for uploads.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithStrategy selects the transport; unknown values keep multipart.
func WithStrategy(s Strategy) ClientOption {
	return func(c *Client) {
		switch s {
		case StrategyMultipart, StrategyBase64:
			c.strategy = s
		}
	}
}

// NewClient targets <baseURL>/upload, e.g. http://localhost:3001/api/upload.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		endpoint:   strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/upload",
		strategy:   StrategyMultipart,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategy returns the configured transport.
func (c *Client) Strategy() Strategy { return c.strategy }

// Upload sends the image and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, img capture.Image) (string, error) {
	if len(img.Data) == 0 {
		return "", &UploadError{Message: "empty image"}
	}
	var (
		body        io.Reader
		contentType string
		err         error
	)
	switch c.strategy {
	case StrategyBase64:
		body, contentType, err = base64Payload(img)
	default:
		body, contentType, err = multipartPayload(img)
	}
	if err != nil {
		return "", &UploadError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &UploadError{StatusCode: resp.StatusCode, Err: err}
	}
	var decoded struct {
		URL       string `json:"url"`
		SecureURL string `json:"secure_url"`
		Error     string `json:"error"`
	}
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decoded.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &UploadError{StatusCode: resp.StatusCode, Message: msg}
	}
	url := strings.TrimSpace(decoded.URL)
	if url == "" {
		url = strings.TrimSpace(decoded.SecureURL)
	}
	if url == "" {
		return "", &UploadError{StatusCode: resp.StatusCode, Err: errors.New("response missing url")}
	}
	return url, nil
}

func multipartPayload(img capture.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	name := img.Name
	if name == "" {
		name = "upload"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func base64Payload(img capture.Image) (io.Reader, string, error) {
	data, err := json.Marshal(base64Body{File: EncodeDataURL(img.MIMEType, img.Data), Name: img.Name})
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}
