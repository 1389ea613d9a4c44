package rest

import (
	"errors"
	"net/http"

	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/pkg/web"
)

type registerDto struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginDto struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileDto struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates a new user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto registerDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	profile, err := h.sessions.Register(dto.Name, dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, session.ErrUserAlreadyExists) {
			h.logger.WarnContext(r.Context(), "Registration conflict", "email", dto.Email)
			web.RespondError(w, h.logger, http.StatusConflict, "User already exists")
			return
		}
		h.logger.ErrorContext(r.Context(), "Registration failed", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Registration failed")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusCreated, profileDto{
		ID:    profile.ID.String(),
		Name:  profile.Name,
		Email: profile.Email,
	})
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := web.GetUserID(w, r, h.logger)
	if !ok {
		return
	}
	profile, err := h.sessions.ProfileByID(userID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Profile lookup failed for authenticated user", "user_id", userID)
		web.RespondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, profileDto{
		ID:    profile.ID.String(),
		Name:  profile.Name,
		Email: profile.Email,
	})
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto loginDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	token, err := h.sessions.SignIn(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.logger.WarnContext(r.Context(), "Sign-in rejected", "email", dto.Email)
			web.RespondError(w, h.logger, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.ErrorContext(r.Context(), "Sign-in failed", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Sign-in failed")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"token": token})
}
