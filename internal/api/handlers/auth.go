package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rei/cms-backend/internal/api/middleware"
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("ERROR [handlers.AuthHandler] login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, h.sessionCookie(result.SessionID.String(), int(h.cfg.SessionDuration.Seconds())))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout never fails outward: the server-side delete is best effort and the
// cookie is cleared regardless of whether a session existed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.SessionCookieName); err == nil {
		_ = h.authService.DestroySession(r.Context(), cookie.Value)
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": user.ID.String(),
		"email":   user.Email,
	})
}

// sessionCookie builds the session cookie with the mandatory attributes:
// HttpOnly, SameSite=Lax, Path=/, and Secure in production. A negative maxAge
// produces the removal cookie used by Logout.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.IsProduction(),
	}
}
