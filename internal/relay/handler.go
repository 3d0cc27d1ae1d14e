package relay

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"ecogenius/internal/api"
	"ecogenius/internal/logging"
)

const (
	msgNoFile       = "No file provided"
	msgUploadFailed = "Upload failed"
	msgTooLarge     = "File too large"
)

// DefaultMaxBytes bounds upload bodies when no limit is configured.
const DefaultMaxBytes int64 = 10 << 20

// Handler serves POST /api/upload.
type Handler struct {
	host     ImageHost
	maxBytes int64
	logger   *slog.Logger
}

// NewHandler builds an upload handler. maxBytes <= 0 selects DefaultMaxBytes.
func NewHandler(host ImageHost, maxBytes int64, logger *slog.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{
		host:     host,
		maxBytes: maxBytes,
		logger:   logging.NewComponentLogger(logger, "relay"),
	}
}

type base64Body struct {
	File string `json:"file"`
	Name string `json:"name,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	logger := logging.WithContext(r.Context(), h.logger)
	// Base64 inflates payloads by a third; the JSON limit is sized for the decoded bytes.
	limited := http.MaxBytesReader(w, r.Body, h.maxBytes+h.maxBytes/3+1024)
	raw, err := io.ReadAll(limited)
	if err != nil {
		status := statusForReadError(err)
		logger.Warn("upload rejected", logging.Int("status", status), logging.Error(err))
		api.WriteError(w, logger, status, readError(err).Error())
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		asset     Asset
		fromJSON  bool
		errStatus int
	)
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		asset, errStatus, err = h.readMultipart(r)
	case mediaType == "application/json":
		fromJSON = true
		asset, errStatus, err = h.readBase64(r)
	default:
		errStatus, err = http.StatusBadRequest, errors.New(msgNoFile)
	}
	if err != nil {
		logger.Warn("upload rejected", logging.Int("status", errStatus), logging.Error(err))
		api.WriteError(w, logger, errStatus, err.Error())
		return
	}
	if int64(len(asset.Data)) > h.maxBytes {
		logger.Warn("upload rejected", logging.Int("status", http.StatusRequestEntityTooLarge), logging.Int("bytes", len(asset.Data)))
		api.WriteError(w, logger, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}

	hosted, err := h.host.Store(r.Context(), asset)
	if err != nil || hosted.URL == "" {
		if err == nil {
			err = errors.New("image host returned no url")
		}
		logger.Error("upload failed", logging.String("name", asset.Name), logging.Error(err))
		api.WriteError(w, logger, http.StatusInternalServerError, msgUploadFailed)
		return
	}

	logger.Info("upload stored",
		logging.String("name", asset.Name),
		logging.Int("bytes", len(asset.Data)),
		logging.String("public_id", hosted.PublicID),
		logging.Bool("base64", fromJSON),
	)
	resp := api.UploadResponse{URL: hosted.URL, PublicID: hosted.PublicID}
	if fromJSON {
		resp.SecureURL = hosted.URL
	}
	api.WriteJSON(w, logger, http.StatusOK, resp)
}

func (h *Handler) readMultipart(r *http.Request) (Asset, int, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
		}
		if err != nil {
			return Asset{}, statusForReadError(err), readError(err)
		}
		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return Asset{}, statusForReadError(err), readError(err)
		}
		if len(data) == 0 {
			return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
		}
		return Asset{Name: part.FileName(), Data: data}, 0, nil
	}
}

func (h *Handler) readBase64(r *http.Request) (Asset, int, error) {
	var body base64Body
	if err := api.DecodeJSON(r, &body); err != nil {
		switch {
		case errors.Is(err, api.ErrBodyTooLarge):
			return Asset{}, http.StatusRequestEntityTooLarge, errors.New(msgTooLarge)
		case errors.Is(err, io.EOF):
			return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
		default:
			return Asset{}, http.StatusBadRequest, errors.New("invalid JSON body")
		}
	}
	if strings.TrimSpace(body.File) == "" {
		return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
	}
	data, err := DecodeDataURL(body.File)
	if err != nil {
		return Asset{}, http.StatusBadRequest, err
	}
	if len(data) == 0 {
		return Asset{}, http.StatusBadRequest, errors.New(msgNoFile)
	}
	return Asset{Name: body.Name, Data: data}, 0, nil
}

// DecodeDataURL accepts "data:<mime>;base64,<payload>" or a bare base64 string.
func DecodeDataURL(value string) ([]byte, error) {
	payload := strings.TrimSpace(value)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, errors.New("malformed data URL")
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, errors.New("data URL must be base64 encoded")
		}
		payload = payload[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if alt, altErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); altErr == nil {
			return alt, nil
		}
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, nil
}

// EncodeDataURL renders bytes as a base64 data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func statusForReadError(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errors.New(msgTooLarge)
	}
	return errors.New(msgNoFile)
}
