package server

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"ecogenius/internal/advice"
	"ecogenius/internal/api"
	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/logging"
	"ecogenius/internal/services"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.deps.Upload == nil {
		s.writeUnavailable(w)
		return
	}
	ctx := services.WithOperation(r.Context(), "upload")
	s.deps.Upload.ServeHTTP(w, r.WithContext(ctx))
}

// handleClassify accepts either {"image_url": "..."} or a multipart "file".
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if s.deps.Classifier == nil {
		s.writeUnavailable(w)
		return
	}
	ctx := services.WithOperation(r.Context(), "classify")
	r = r.WithContext(ctx)
	logger := logging.WithContext(ctx, s.logger)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody+1<<20)

	var (
		result classify.Result
		err    error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		img, readErr := readImagePart(r)
		var capErr *capture.Error
		if errors.As(readErr, &capErr) {
			s.writeClassifyError(w, r, readErr)
			return
		}
		if readErr != nil {
			status := http.StatusBadRequest
			var maxErr *http.MaxBytesError
			if errors.As(readErr, &maxErr) {
				status = http.StatusRequestEntityTooLarge
			}
			logger.Warn("classify upload rejected", logging.Error(readErr))
			api.WriteError(w, logger, status, "Please provide an image to analyze.")
			return
		}
		result, err = s.deps.Classifier.ClassifyImage(ctx, img)
	} else {
		var req api.ImageURLRequest
		if decodeErr := api.DecodeJSON(r, &req); decodeErr != nil {
			status := http.StatusBadRequest
			if errors.Is(decodeErr, api.ErrBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			api.WriteError(w, logger, status, "Please provide an image to analyze.")
			return
		}
		result, err = s.deps.Classifier.ClassifyURL(ctx, classify.Request{ImageURL: req.ImageURL})
	}
	if err != nil {
		s.writeClassifyError(w, r, err)
		return
	}
	api.WriteJSON(w, logger, http.StatusOK, ClassifyResponse{
		Result: result,
		Card:   advice.Build(result, advice.Options{}),
	})
}

func readImagePart(r *http.Request) (capture.Image, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return capture.Image{}, err
	}
	defer file.Close()
	return capture.FromReader(header.Filename, file)
}
