package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Jasith06/jlink-pos-web/apperr"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithAppError logs the full error and sends the sanitized message
// with the status its class maps to.
func RespondWithAppError(w http.ResponseWriter, err error) {
	code := apperr.Status(err)
	if code >= http.StatusInternalServerError {
		log.Println("request failed:", err)
	}
	RespondWithError(w, code, apperr.Message(err))
}

type M map[string]interface{}
