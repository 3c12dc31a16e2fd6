package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors authdomain.ValidationErrors `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

func writeValidationErrors(w http.ResponseWriter, verrs authdomain.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: verrs})
}

// writeServerError hides internal failure detail behind a generic 500.
func writeServerError(w http.ResponseWriter) {
	writeMsg(w, http.StatusInternalServerError, "Server Error")
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
}
