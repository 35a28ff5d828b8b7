// Package httpapi exposes the credential lifecycle over HTTP. Route shapes
// and response bodies are part of the public contract consumed by the
// course-catalog frontend.
package httpapi

import (
	"encoding/json"
	"net/http"

	courseauth "github.com/coursebook/courseauth"
	"github.com/coursebook/courseauth/middleware"
)

// Handler holds the engine behind the auth endpoints.
type Handler struct {
	engine *courseauth.Engine
}

// NewHandler wires a built engine.
func NewHandler(engine *courseauth.Engine) *Handler {
	return &Handler{engine: engine}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an unverified account and emails the code.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.engine.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered. Please verify your email.")
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// HandleVerifyOTP consumes the registration code and activates the account.
func (h *Handler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.engine.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Email verified successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// HandleLogin authenticates and returns the bearer token with the profile.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User: userPayload{
			ID:    result.Account.ID,
			Name:  result.Account.Name,
			Email: result.Account.Email,
		},
	})
}

type requestResetRequest struct {
	Email string `json:"email"`
}

// HandleRequestReset attaches a reset code to the account and emails it.
func (h *Handler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.engine.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset code sent to your email")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword consumes the reset code and installs the new password.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.engine.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successful")
}

type meResponse struct {
	User userPayload `json:"user"`
}

// HandleMe echoes the authenticated identity. It sits behind the guard, so
// reaching it at all proves the token.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		User: userPayload{ID: id.AccountID, Email: id.Email},
	})
}
