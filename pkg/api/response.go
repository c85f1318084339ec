package api

import (
	"encoding/json"
	"net/http"

	"github.com/jhartmann-dev/blog-api/pkg/store"
)

// errorKind classifies a request failure and carries its HTTP status.
// Stores signal absence with plain returns; translation to HTTP status
// happens only here at the boundary.
type errorKind struct {
	label  string
	status int
}

var (
	errBadRequest      = errorKind{"Bad Request", http.StatusBadRequest}
	errUnauthorized    = errorKind{"Unauthorized", http.StatusUnauthorized}
	errForbidden       = errorKind{"Forbidden", http.StatusForbidden}
	errNotFound        = errorKind{"Not Found", http.StatusNotFound}
	errConflict        = errorKind{"Conflict", http.StatusConflict}
	errTooManyRequests = errorKind{"Too Many Requests", http.StatusTooManyRequests}
	errInternal        = errorKind{"Internal Server Error", http.StatusInternalServerError}
)

// errorBody is the uniform failure response:
// {success:false, error:<category>, message:<string>, statusCode:<int>}.
type errorBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// userInfo is the public projection of an account.
type userInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginData struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Data    loginData `json:"data"`
	Message string    `json:"message"`
}

type registerResponse struct {
	Success bool       `json:"success"`
	Data    store.User `json:"data"`
	Message string     `json:"message"`
}

type meResponse struct {
	Success bool     `json:"success"`
	Data    userInfo `json:"data"`
}

type postResponse struct {
	Success bool       `json:"success"`
	Data    store.Post `json:"data"`
	Message string     `json:"message"`
}

type pagination struct {
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type postsListResponse struct {
	Success    bool         `json:"success"`
	Data       []store.Post `json:"data"`
	Total      int          `json:"total"`
	Message    string       `json:"message"`
	Pagination *pagination  `json:"pagination,omitempty"`
}

type infinitePostsResponse struct {
	Success    bool         `json:"success"`
	Data       []store.Post `json:"data"`
	NextCursor *string      `json:"nextCursor"`
	HasMore    bool         `json:"hasMore"`
	Message    string       `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, kind errorKind, message string) {
	s.writeJSON(w, kind.status, errorBody{
		Success:    false,
		Error:      kind.label,
		Message:    message,
		StatusCode: kind.status,
	})
}

// decodeJSON parses a request body. A parse failure is a caller error and
// is surfaced as 400, not 500.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
