package helper

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Warning    string            `json:"warning,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func Failure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Success: false, Message: message})
}

func ValidationFailure(w http.ResponseWriter, message string, errs map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Response{Success: false, Message: message, Errors: errs})
}
