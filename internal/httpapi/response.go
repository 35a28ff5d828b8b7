package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	courseauth "github.com/coursebook/courseauth"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps engine errors to client-facing responses. Business
// rejections answer 400 with a stable message; everything else collapses to
// a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, courseauth.ErrAccountExists):
		writeMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, courseauth.ErrAccountNotFound):
		writeMessage(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, courseauth.ErrNoChallenge):
		writeMessage(w, http.StatusBadRequest, "No OTP found. Please request a new one.")
	case errors.Is(err, courseauth.ErrChallengeExpired):
		writeMessage(w, http.StatusBadRequest, "OTP has expired. Please request a new one.")
	case errors.Is(err, courseauth.ErrCodeMismatch):
		writeMessage(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, courseauth.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, courseauth.ErrAccountUnverified):
		writeMessage(w, http.StatusBadRequest, "Please verify your email first")
	case errors.Is(err, courseauth.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, courseauth.ErrPasswordPolicy):
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
	default:
		log.Printf("courseauth: request failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
