package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/antonkvl/authgate/internal/common"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID     int64   `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Groups []int64 `json:"groups"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *userPayload `json:"user,omitempty"`
}

type verifyResponse struct {
	Success       bool         `json:"success"`
	Authenticated bool         `json:"authenticated"`
	Message       string       `json:"message,omitempty"`
	User          *userPayload `json:"user,omitempty"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "email and password are required"})
		return
	}

	token, claims, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, loginResponse{Message: common.ErrInvalidCredentials.Error()})
		case errors.Is(err, common.ErrAccountInactive):
			writeJSON(w, http.StatusUnauthorized, loginResponse{Message: common.ErrAccountInactive.Error()})
		default:
			// Signing and key-material failures stay opaque to the caller.
			s.logger.Error(ctx, "login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, loginResponse{Message: "internal server error"})
		}
		return
	}

	writeToken(w, token, s.auth.TokenValidity())
	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "login successful",
		User: &userPayload{
			ID:     claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Groups: claims.Groups,
		},
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Logout cannot fail: the cookie is cleared whether or not it held a
	// valid token, and the server keeps no session record to delete.
	clearToken(w)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Message: "logged out"})
}

func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := s.auth.Verify(ctx, readToken(r))
	if err != nil {
		if !errors.Is(err, common.ErrNoToken) && !errors.Is(err, common.ErrInvalidToken) {
			s.logger.Error(ctx, "verify failed", "error", err)
		}
		// A single generic message for every failure mode; the caller
		// learns nothing about why the token was rejected.
		writeJSON(w, http.StatusUnauthorized, verifyResponse{Message: "not authenticated"})
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Success:       true,
		Authenticated: true,
		User: &userPayload{
			ID:     claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Groups: claims.Groups,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
