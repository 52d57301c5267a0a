package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
	"github.com/brickmint/lead-intake/internal/usecase"
)

// csvColumns is the fixed column order of the import/export template.
var csvColumns = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose",
	"budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status",
}

type ImportHandler struct {
	ImportUC    *usecase.ImportLeadsUseCase
	rateLimiter *RateLimiter
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{
		ImportUC:    importUC,
		rateLimiter: NewRateLimiter(5, time.Minute),
	}
}

// Handle (POST /buyers/import) tokenizes the uploaded CSV and hands the
// rows to the import coordinator. All the partial-failure semantics
// live there; this handler only does file plumbing.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please try again later")
		return
	}

	file, header, err := r.FormFile("csvFile")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "NO_FILE", "no file uploaded")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FILE", "only CSV files allowed")
		return
	}

	rows, err := tokenizeCSV(file)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_CSV", "failed to parse CSV: "+err.Error())
		return
	}

	report, err := h.ImportUC.Execute(r.Context(), rows, middleware.ActorID(r.Context()))
	if err != nil {
		if de, ok := usecase.AsDomainError(err); ok && de.Code == usecase.CodeNoValidRows && report != nil {
			// Per-row diagnostics still go back to the caller.
			middleware.RecordImportRowsRejected(len(report.Errors))
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code":   de.Code,
				"error":  de.Message,
				"errors": report.Errors,
			})
			return
		}
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadsImported(report.ImportedCount)
	middleware.RecordImportRowsRejected(len(report.Errors))

	writeJSON(w, http.StatusOK, map[string]any{
		"importedCount": report.ImportedCount,
		"errors":        report.Errors,
	})
}

// tokenizeCSV reads every record into a column-name map. A leading
// header row matching the template is skipped so exported files can be
// re-imported as-is.
func tokenizeCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows := []map[string]string{}
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "fullName") {
				continue
			}
		}

		row := map[string]string{}
		for i, col := range csvColumns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
