package handler

import (
	"net/http"

	"github.com/parlor-dev/parlor/internal/api"
	"github.com/parlor-dev/parlor/internal/domain"
	"github.com/parlor-dev/parlor/internal/middleware"
	"github.com/parlor-dev/parlor/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.user.Register(r.Context(), domain.UserCreationData{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.UserResponse{User: *user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, _, err := h.user.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, api.LoginResponse{Message: "You logged in", AccessToken: token})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}

// Me returns the full user document behind the authenticated principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUserFromContext(r)
	if principal == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	user, err := h.user.Get(r.Context(), principal.AuthorId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.UserResponse{User: *user})
}

// DeleteMe removes the authenticated user's account. Rejected while the user
// still owns threads or posts.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUserFromContext(r)
	if principal == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.user.Delete(r.Context(), principal.AuthorId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
