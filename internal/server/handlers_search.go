package server

import (
	"errors"
	"net/http"
	"strings"

	"ecogenius/internal/api"
	"ecogenius/internal/council"
	"ecogenius/internal/logging"
	"ecogenius/internal/search"
	"ecogenius/internal/services"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Guide == nil {
		s.writeUnavailable(w)
		return
	}
	ctx := services.WithOperation(r.Context(), "search")
	logger := logging.WithContext(ctx, s.logger)
	query := r.URL.Query()
	category := strings.TrimSpace(query.Get("category"))
	if category == "" {
		category = search.AllCategories
	}

	results, err := s.deps.Guide.Search(ctx, query.Get("q"), category)
	if err != nil {
		var fbErr *search.FallbackError
		if errors.As(err, &fbErr) {
			api.WriteError(w, logger, http.StatusBadGateway, fbErr.UserMessage())
			return
		}
		api.WriteError(w, logger, services.HTTPStatus(err), err.Error())
		return
	}
	if results.Items == nil {
		results.Items = []search.Item{}
	}
	api.WriteJSON(w, logger, http.StatusOK, results)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, s.logger, http.StatusOK, api.NewList(search.PopularItems()))
}

func (s *Server) handleCouncils(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, s.logger, http.StatusOK, api.NewList(council.All()))
}

func (s *Server) handleCouncilLookup(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithContext(r.Context(), s.logger)
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		api.WriteError(w, logger, http.StatusBadRequest, "Please enter an address or suburb.")
		return
	}
	match, err := council.FindByAddress(address)
	if errors.Is(err, council.ErrNoMatch) {
		api.WriteError(w, logger, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		api.WriteError(w, logger, http.StatusInternalServerError, err.Error())
		return
	}
	api.WriteJSON(w, logger, http.StatusOK, match)
}

func (s *Server) handleCouncil(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithContext(r.Context(), s.logger)
	info, err := council.Lookup(r.PathValue("id"))
	if errors.Is(err, council.ErrUnknownCouncil) {
		api.WriteError(w, logger, http.StatusNotFound, "council not found")
		return
	}
	if err != nil {
		api.WriteError(w, logger, http.StatusInternalServerError, err.Error())
		return
	}
	api.WriteJSON(w, logger, http.StatusOK, info)
}

func (s *Server) handleSpecialWaste(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, s.logger, http.StatusOK, api.NewList(council.SpecialWasteGuide()))
}
