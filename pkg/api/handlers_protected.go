package api

import (
	"net/http"
	"strings"
)

func (s *Server) handleProtectedList(w http.ResponseWriter, r *http.Request) {
	posts := s.posts.List(0, 0)

	s.writeJSON(w, http.StatusOK, postsListResponse{
		Success: true,
		Data:    posts,
		Total:   len(posts),
		Message: "Posts retrieved successfully",
	})
}

func (s *Server) handleProtectedCreate(w http.ResponseWriter, r *http.Request) {
	s.createPost(w, r)
}

func (s *Server) handleProtectedGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	post, ok := s.posts.GetByID(id)
	if !ok {
		s.writeError(w, errNotFound, "Post with id '"+id+"' not found")
		return
	}

	s.writeJSON(w, http.StatusOK, postResponse{
		Success: true,
		Data:    post,
		Message: "Post retrieved successfully",
	})
}

type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *Server) handleProtectedUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, errBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Title == nil && req.Description == nil {
		s.writeError(w, errBadRequest, "At least one field (title or description) is required")
		return
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if len(trimmed) < 3 {
			s.writeError(w, errBadRequest, "Title must be at least 3 characters long")
			return
		}
		req.Title = &trimmed
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		if len(trimmed) < 10 {
			s.writeError(w, errBadRequest, "Description must be at least 10 characters long")
			return
		}
		req.Description = &trimmed
	}

	post, ok := s.posts.Update(id, req.Title, req.Description)
	if !ok {
		s.writeError(w, errNotFound, "Post with id '"+id+"' not found")
		return
	}
	s.invalidatePostCaches(r)

	s.logger.Info().Str("post_id", id).Msg("Post updated")
	s.writeJSON(w, http.StatusOK, postResponse{
		Success: true,
		Data:    post,
		Message: "Post updated successfully",
	})
}

func (s *Server) handleProtectedDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !s.posts.Delete(id) {
		s.writeError(w, errNotFound, "Post with id '"+id+"' not found")
		return
	}
	s.invalidatePostCaches(r)

	s.logger.Info().Str("post_id", id).Msg("Post deleted")
	s.writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Post deleted successfully",
	})
}
