package utils

import (
	"encoding/json"
	"net/http"

	"novusarc/placement/internal/models"
)

// JSON writes a JSON response with status code
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// Success wraps data in the standard success envelope.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, models.APIResponse{Success: true, Message: message, Data: data})
}

// SuccessList is Success with an item count.
func SuccessList[T any](w http.ResponseWriter, message string, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	JSON(w, http.StatusOK, models.APIResponse{Success: true, Message: message, Data: items, Count: &count})
}

// JSONError writes an error payload with the given code.
func JSONError(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, models.ErrorResponse{Code: code, Message: message})
}
