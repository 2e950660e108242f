package handlers

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/auth"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/middleware"
	"github.com/ukydev/tourfleet/internal/models"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := decodeJSON(r, &loginReq); err != nil {
		writeFailure(w, r, "user", err)
		return
	}

	loginReq.Username = strings.TrimSpace(loginReq.Username)
	if loginReq.Username == "" || loginReq.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), h.userCollection, loginReq)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case errors.Is(err, auth.ErrUserInactive):
		writeError(w, http.StatusUnauthorized, "account is deactivated")
		return
	case err != nil:
		writeFailure(w, r, "user", err)
		return
	}

	log.WithFields(log.Fields{"username": resp.User.Username, "role": resp.User.Role}).Info("User logged in")
	writeJSON(w, http.StatusOK, resp)
}

// Me returns the current user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeFailure(w, r, "user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
