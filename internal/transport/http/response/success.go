package response

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON success response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusOK, payload)
}

// Created writes a 201 response.
func Created(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusCreated, payload)
}
