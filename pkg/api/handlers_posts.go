package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jhartmann-dev/blog-api/pkg/cache"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageParam := q.Get("page")
	limitParam := q.Get("limit")

	page, limit := 0, 0
	if pageParam != "" {
		n, err := strconv.Atoi(pageParam)
		if err != nil || n < 1 {
			s.writeError(w, errBadRequest, "Invalid page parameter: must be a positive integer")
			return
		}
		page = n
	}
	if limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n < 1 || n > 100 {
			s.writeError(w, errBadRequest, "Invalid limit parameter: must be between 1 and 100")
			return
		}
		limit = n
	}

	cacheKey := fmt.Sprintf("posts:%s:%s", orAll(pageParam), orAll(limitParam))
	if body, err := s.cache.Get(r.Context(), cacheKey); err == nil {
		s.serveCacheable(w, r, body, "HIT")
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("cache_key", cacheKey).Msg("Cache get error")
	}

	posts := s.posts.List(page, limit)
	total := s.posts.Count()

	currentPage := page
	if currentPage == 0 {
		currentPage = 1
	}
	itemsPerPage := limit
	if itemsPerPage == 0 {
		itemsPerPage = total
	}
	totalPages := 1
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	resp := postsListResponse{
		Success: true,
		Data:    posts,
		Total:   total,
		Message: "Posts retrieved successfully",
		Pagination: &pagination{
			CurrentPage:     currentPage,
			ItemsPerPage:    itemsPerPage,
			TotalPages:      totalPages,
			TotalItems:      total,
			HasNextPage:     page > 0 && limit > 0 && currentPage < totalPages,
			HasPreviousPage: page > 1,
		},
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode posts response")
		s.writeError(w, errInternal, "Failed to retrieve posts")
		return
	}

	if err := s.cache.Set(r.Context(), cacheKey, body, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("cache_key", cacheKey).Msg("Cache set error")
	}

	s.serveCacheable(w, r, body, "MISS")
}

func (s *Server) handleInfinitePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cursor := q.Get("cursor")

	limit := 10
	if limitParam := q.Get("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n < 1 || n > 50 {
			s.writeError(w, errBadRequest, "Invalid limit parameter: must be between 1 and 50")
			return
		}
		limit = n
	}

	cursorKey := cursor
	if cursorKey == "" {
		cursorKey = "start"
	}
	cacheKey := fmt.Sprintf("posts:infinite:%s:%d", cursorKey, limit)
	if body, err := s.cache.Get(r.Context(), cacheKey); err == nil {
		s.serveCacheable(w, r, body, "HIT")
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("cache_key", cacheKey).Msg("Cache get error")
	}

	page := s.posts.ListByCursor(cursor, limit)

	resp := infinitePostsResponse{
		Success: true,
		Data:    page.Posts,
		HasMore: page.HasMore,
		Message: "Posts retrieved successfully",
	}
	if page.NextCursor != "" {
		resp.NextCursor = &page.NextCursor
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode posts response")
		s.writeError(w, errInternal, "Failed to retrieve posts")
		return
	}

	if err := s.cache.Set(r.Context(), cacheKey, body, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("cache_key", cacheKey).Msg("Cache set error")
	}

	s.serveCacheable(w, r, body, "MISS")
}

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	s.createPost(w, r)
}

// createPost is shared by the public and protected create routes.
func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, errBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Title == "" || req.Description == "" {
		s.writeError(w, errBadRequest, "Missing required fields: title and description are required")
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if len(title) < 3 {
		s.writeError(w, errBadRequest, "Title must be at least 3 characters long")
		return
	}
	if len(description) < 10 {
		s.writeError(w, errBadRequest, "Description must be at least 10 characters long")
		return
	}

	post := s.posts.Create(title, description)
	s.invalidatePostCaches(r)

	s.logger.Info().Str("post_id", post.ID).Msg("Post created")
	s.writeJSON(w, http.StatusCreated, postResponse{
		Success: true,
		Data:    post,
		Message: "Post created successfully",
	})
}

func orAll(param string) string {
	if param == "" {
		return "all"
	}
	return param
}
