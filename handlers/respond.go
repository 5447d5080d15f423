package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"todo-api-v2/api"
)

// respondWithJSON formats and sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError sends a {"detail": "..."} error body.
func respondWithError(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, map[string]string{"detail": detail})
}

// respondWithValidationErrors sends the field-level 400 shape
// {"detail": [{loc, msg, type}, ...]}.
func respondWithValidationErrors(w http.ResponseWriter, verrs api.ValidationErrors) {
	respondWithJSON(w, http.StatusBadRequest, map[string]api.ValidationErrors{"detail": verrs})
}

// serverError maps unexpected errors to responses. Timeouts become 504 and
// everything else is logged and reported as a generic 500 with no internal
// detail exposed.
func serverError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		respondWithError(w, http.StatusGatewayTimeout, "Request timed out")
		return
	}
	log.Printf("ERROR: %v", err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
