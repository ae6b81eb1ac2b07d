package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

const (
	msgRegistered    = "Registration successful. Please check your email to verify your account."
	msgResendGeneric = "If that email is registered and unverified, a new verification link has been sent."
)

type AuthHandler struct {
	AuthService *service.AuthService
	FrontendURL string
}

// HandleRegister creates an unverified account.
//
//	@Summary		Register
//	@Description	Creates an account and emails a verification link. No token is issued until the email is verified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	taskmesdk.MessageResponse
//	@Failure		400		{object}	taskmesdk.ErrorResponse	"Weak password or invalid field"
//	@Failure		409		{object}	taskmesdk.ErrorResponse	"Username or email already in use"
//	@Failure		429		{object}	taskmesdk.ErrorResponse
//	@Router			/api/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	_, err := h.AuthService.Register(r.Context(), req)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, taskmesdk.MessageResponse{Message: msgRegistered})
	case errors.Is(err, service.ErrUsernameTaken):
		taskmesdk.Conflict("Username already taken").WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		taskmesdk.Conflict("Email already registered").WriteError(w)
	default:
		writeServiceError(w, r, err, "Registration failed")
	}
}

// HandleVerifyEmail consumes a verification token and redirects to the frontend.
//
//	@Summary		Verify email
//	@Description	Redirects to FRONTEND_URL/login?verified=success|invalid|expired.
//	@Tags			Auth
//	@Param			token	query	string	true	"Verification token"
//	@Success		303
//	@Router			/api/v1/auth/verify-email [get].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	res, err := h.AuthService.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		slogx.FromContext(r.Context()).Error("email verification failed", "error", err)
		res = service.VerifyInvalid
	}

	target := strings.TrimSuffix(h.FrontendURL, "/") + "/login?verified=" + url.QueryEscape(string(res))
	httpx.NoCache(w)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleResendVerification re-sends the verification email.
//
//	@Summary		Resend verification
//	@Description	Always answers with the same message whether or not the address is known.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.ResendVerificationRequest	true	"Email address"
//	@Success		200		{object}	taskmesdk.MessageResponse
//	@Router			/api/v1/auth/resend-verification [post].
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.ResendVerificationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	h.AuthService.ResendVerification(r.Context(), req.Email)
	httpx.WriteJSON(w, http.StatusOK, taskmesdk.MessageResponse{Message: msgResendGeneric})
}

// HandleLogin exchanges credentials for a bearer token.
//
//	@Summary		Login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	taskmesdk.LoginResponse
//	@Failure		401		{object}	taskmesdk.ErrorResponse	"Invalid username or password"
//	@Failure		403		{object}	taskmesdk.ErrorResponse	"Email not verified"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskmesdk.LoginResponse{
			AccessToken: res.AccessToken,
			TokenType:   "bearer",
			ExpiresIn:   int64(res.ExpiresIn.Seconds()),
			User: taskmesdk.UserSummary{
				ID:       res.User.ID,
				Username: res.User.Username,
				Email:    res.User.Email,
			},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		taskmesdk.Unauthorized("Invalid username or password").WriteError(w)
	case errors.Is(err, service.ErrEmailNotVerified):
		taskmesdk.Forbidden("Please verify your email before logging in").WriteError(w)
	default:
		writeServiceError(w, r, err, "Login failed")
	}
}

// HandleMe returns the caller's profile.
//
//	@Summary	Current user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	taskmesdk.UserProfile
//	@Failure	401	{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	httpx.WriteJSON(w, http.StatusOK, taskmesdk.UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	})
}
