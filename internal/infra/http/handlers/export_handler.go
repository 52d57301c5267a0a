package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/database"
	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
)

type ExportHandler struct {
	LeadRepo *database.LeadRepository
}

func NewExportHandler(leadRepo *database.LeadRepository) *ExportHandler {
	return &ExportHandler{LeadRepo: leadRepo}
}

// Handle (GET /buyers/export) streams the owner's filtered leads as
// CSV in the same column order the import expects.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := database.LeadFilter{
		OwnerID:      middleware.ActorID(r.Context()),
		City:         q.Get("city"),
		PropertyType: q.Get("propertyType"),
		Status:       q.Get("status"),
		Timeline:     q.Get("timeline"),
		Search:       q.Get("search"),
		// No pagination: the export is the whole filtered set.
	}

	leads, _, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="buyers.csv"`)

	writer := csv.NewWriter(w)
	writer.Write(csvColumns)

	for _, lead := range leads {
		writer.Write([]string{
			lead.FullName,
			lead.Email,
			lead.Phone,
			lead.City,
			lead.PropertyType,
			lead.Bhk,
			lead.Purpose,
			intCell(lead.BudgetMin),
			intCell(lead.BudgetMax),
			lead.Timeline,
			lead.Source,
			lead.Notes,
			strings.Join(lead.Tags, ", "),
			lead.Status,
		})
	}
	writer.Flush()
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Meta (GET /buyers/meta) exposes the fixed vocabularies so the intake
// form and the import template stay in sync with the validator.
func Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cities":        entity.Cities,
		"propertyTypes": entity.PropertyTypes,
		"bhks":          entity.Bhks,
		"purposes":      entity.Purposes,
		"timelines":     entity.Timelines,
		"sources":       entity.Sources,
		"statuses":      entity.Statuses,
	})
}
