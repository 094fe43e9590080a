package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"circleapp/internal/apperrors"
)

// Response - единый конверт ответа API
type Response struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Code:    statusCode,
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Code:    statusCode,
		Status:  "Error",
		Message: message,
	})
}

// WriteAppError раскладывает ошибку по таксономии:
// валидация - 400, "не найдено" - 404, чужой ресурс - 403, занятый email - 409,
// всё остальное - 500 с текстом ошибки как есть.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrSelfFollow):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case apperrors.IsNotFound(err):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, apperrors.ErrEmailTaken):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
