package api

import (
	"net/http"
	"regexp"

	"github.com/jhartmann-dev/blog-api/pkg/token"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, errBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		s.writeError(w, errBadRequest, "Username and password are required")
		return
	}

	user, ok := s.users.ValidateCredentials(req.Username, req.Password)
	if !ok {
		s.logger.Warn().Str("username", req.Username).Msg("Failed login attempt")
		s.writeError(w, errUnauthorized, "Invalid username or password")
		return
	}

	tok, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue token")
		s.writeError(w, errInternal, "Failed to process login")
		return
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")
	s.writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Data: loginData{
			Token: tok,
			User:  userInfo{ID: user.ID, Username: user.Username, Email: user.Email},
		},
		Message: "Login successful",
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, errBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		s.writeError(w, errBadRequest, "Username, password, and email are required")
		return
	}
	if len(req.Username) < 3 || len(req.Username) > 20 {
		s.writeError(w, errBadRequest, "Username must be between 3 and 20 characters")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		s.writeError(w, errBadRequest, "Invalid email format")
		return
	}
	if len(req.Password) < 6 {
		s.writeError(w, errBadRequest, "Password must be at least 6 characters long")
		return
	}

	if _, exists := s.users.FindByUsername(req.Username); exists {
		s.writeError(w, errConflict, "Username already exists")
		return
	}
	if _, exists := s.users.FindByEmail(req.Email); exists {
		s.writeError(w, errConflict, "Email already exists")
		return
	}

	user, err := s.users.CreateUser(req.Username, req.Password, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		s.writeError(w, errInternal, "Failed to register user")
		return
	}

	s.logger.Info().Str("username", user.Username).Msg("User registered")
	s.writeJSON(w, http.StatusCreated, registerResponse{
		Success: true,
		Data:    user,
		Message: "User registered successfully",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	user, ok := s.users.GetByID(claims.UserID)
	if !ok {
		s.writeError(w, errUnauthorized, "Invalid or expired token")
		return
	}

	s.writeJSON(w, http.StatusOK, meResponse{
		Success: true,
		Data:    userInfo{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}
