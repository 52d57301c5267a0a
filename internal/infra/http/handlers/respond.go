package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
	"github.com/brickmint/lead-intake/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": message,
	})
}

type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeUseCaseError maps the domain error taxonomy onto HTTP statuses.
// Anything that is not a DomainError is an infrastructure failure and
// stays opaque to the client.
func writeUseCaseError(w http.ResponseWriter, err error) {
	de, ok := usecase.AsDomainError(err)
	if !ok {
		log.Printf("❌ internal error: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	switch de.Code {
	case usecase.CodeValidationFailed:
		fields := make([]fieldErrorJSON, 0, len(de.Fields))
		for _, fe := range de.Fields {
			fields = append(fields, fieldErrorJSON{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":   de.Code,
			"error":  de.Message,
			"fields": fields,
		})
	case usecase.CodeNotFound:
		writeErrorResponse(w, http.StatusNotFound, de.Code, de.Message)
	case usecase.CodeAccessDenied:
		writeErrorResponse(w, http.StatusForbidden, de.Code, de.Message)
	case usecase.CodeConflict:
		middleware.RecordUpdateConflict()
		writeErrorResponse(w, http.StatusConflict, de.Code, de.Message)
	case usecase.CodeBatchTooLarge, usecase.CodeNoValidRows:
		writeErrorResponse(w, http.StatusBadRequest, de.Code, de.Message)
	default:
		writeErrorResponse(w, http.StatusBadRequest, de.Code, de.Message)
	}
}
