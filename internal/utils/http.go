package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with statusCode and a
// "Content-Type: application/json" header.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// envelope is the wire form of the backend's response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteEnvelope writes {"success", "message", "data"} the way the backend
// wraps every response.
//
// Example usage:
//
//	WriteEnvelope(w, true, "ok", user, http.StatusOK)
//	WriteEnvelope(w, false, "username taken", nil, http.StatusConflict)
func WriteEnvelope(w http.ResponseWriter, success bool, message string, data any, statusCode int) (int, error) {
	return WriteJSON(w, envelope{Success: success, Message: message, Data: data}, statusCode)
}
