package server

import (
	"errors"
	"net/http"

	"ecogenius/internal/api"
	"ecogenius/internal/billboard"
	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/logging"
	"ecogenius/internal/relay"
	"ecogenius/internal/services"
	"ecogenius/internal/services/llm"
)

const msgUnavailable = "This feature is not configured on the server."

// classifyStatus maps pipeline failures to a status code.
func classifyStatus(err error) int {
	var (
		capErr *capture.Error
		upErr  *relay.UploadError
		apiErr *llm.APIError
	)
	switch {
	case errors.As(err, &capErr):
		return http.StatusBadRequest
	case errors.As(err, &upErr):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		if apiErr.Kind == llm.KindRateLimit {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	case errors.Is(err, llm.ErrMalformedResponse):
		return http.StatusBadGateway
	case llm.IsCanceled(err):
		return http.StatusGatewayTimeout
	}
	return services.HTTPStatus(err)
}

func (s *Server) writeClassifyError(w http.ResponseWriter, r *http.Request, err error) {
	status := classifyStatus(err)
	logger := logging.WithContext(r.Context(), s.logger)
	logger.Warn("classification failed", logging.Int("status", status), logging.Error(err))
	api.WriteError(w, logger, status, classify.UserMessage(err))
}

// writeBoardError renders billboard failures, listing fields for validation errors.
func (s *Server) writeBoardError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.WithContext(r.Context(), s.logger)
	var verr *billboard.ValidationError
	switch {
	case errors.As(err, &verr):
		api.WriteJSON(w, logger, http.StatusBadRequest, ValidationResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, billboard.ErrCooldown):
		api.WriteError(w, logger, http.StatusTooManyRequests, billboard.CooldownMessage)
	case errors.Is(err, billboard.ErrPostNotFound):
		api.WriteError(w, logger, http.StatusNotFound, "Post not found")
	default:
		status := services.HTTPStatus(err)
		logger.Warn("billboard request failed", logging.Int("status", status), logging.Error(err))
		api.WriteError(w, logger, status, "Failed to reach the community board. Please try again.")
	}
}

func (s *Server) writeUnavailable(w http.ResponseWriter) {
	api.WriteError(w, s.logger, http.StatusServiceUnavailable, msgUnavailable)
}
