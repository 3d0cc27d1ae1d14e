package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ecogenius/internal/api"
	"ecogenius/internal/billboard"
	"ecogenius/internal/logging"
	"ecogenius/internal/services"
)

// handleListPosts supports ?category= (repeatable), ?suburb= and ?q=.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		s.writeUnavailable(w)
		return
	}
	query := r.URL.Query()
	filter := billboard.Filter{
		Suburb: query.Get("suburb"),
		Search: query.Get("q"),
	}
	for _, value := range query["category"] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Categories = append(filter.Categories, billboard.ParseCategory(part))
			}
		}
	}
	posts, err := s.deps.Board.Posts(r.Context(), filter)
	if err != nil {
		s.writeBoardError(w, r, err)
		return
	}
	api.WriteJSON(w, s.logger, http.StatusOK, api.NewList(posts))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		s.writeUnavailable(w)
		return
	}
	id, ok := s.postID(w, r)
	if !ok {
		return
	}
	post, responses, err := s.deps.Board.Post(r.Context(), id)
	if err != nil {
		s.writeBoardError(w, r, err)
		return
	}
	if responses == nil {
		responses = []billboard.Response{}
	}
	api.WriteJSON(w, s.logger, http.StatusOK, PostDetail{Post: post, Responses: responses})
}

func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		s.writeUnavailable(w)
		return
	}
	id, ok := s.postID(w, r)
	if !ok {
		return
	}
	responses, err := s.deps.Board.Responses(r.Context(), id)
	if err != nil {
		s.writeBoardError(w, r, err)
		return
	}
	api.WriteJSON(w, s.logger, http.StatusOK, api.NewList(responses))
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		s.writeUnavailable(w)
		return
	}
	ctx := billboard.WithSubmitter(services.WithOperation(r.Context(), "post"), clientAddress(r))
	r = r.WithContext(ctx)
	var in billboard.NewPost
	if !s.decodeBody(w, r, &in) {
		return
	}
	post, err := s.deps.Board.Submit(ctx, in)
	if err != nil {
		s.writeBoardError(w, r, err)
		return
	}
	api.WriteJSON(w, s.logger, http.StatusCreated, post)
}

func (s *Server) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		s.writeUnavailable(w)
		return
	}
	ctx := billboard.WithSubmitter(services.WithOperation(r.Context(), "reply"), clientAddress(r))
	r = r.WithContext(ctx)
	var in billboard.NewResponse
	if !s.decodeBody(w, r, &in) {
		return
	}
	resp, err := s.deps.Board.Reply(ctx, in)
	if err != nil {
		s.writeBoardError(w, r, err)
		return
	}
	api.WriteJSON(w, s.logger, http.StatusCreated, resp)
}

func (s *Server) handleNickname(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aliases == nil {
		s.writeUnavailable(w)
		return
	}
	api.WriteJSON(w, s.logger, http.StatusOK, NicknameResponse{Nickname: s.deps.Aliases.Generate()})
}

func (s *Server) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, s.logger, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	err := api.DecodeJSON(r, target)
	if err == nil {
		return true
	}
	logger := logging.WithContext(r.Context(), s.logger)
	if errors.Is(err, api.ErrBodyTooLarge) {
		api.WriteError(w, logger, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	api.WriteError(w, logger, http.StatusBadRequest, "invalid JSON body")
	return false
}
