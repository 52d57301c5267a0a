package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brickmint/lead-intake/internal/infra/database"
	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
	"github.com/brickmint/lead-intake/internal/usecase"
)

type LeadHandler struct {
	CreateUC  *usecase.CreateLeadUseCase
	UpdateUC  *usecase.UpdateLeadUseCase
	DeleteUC  *usecase.DeleteLeadUseCase
	LeadRepo  *database.LeadRepository
	AuditRepo usecase.AuditRepositoryInterface
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	leadRepo *database.LeadRepository,
	auditRepo usecase.AuditRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:  createUC,
		UpdateUC:  updateUC,
		DeleteUC:  deleteUC,
		LeadRepo:  leadRepo,
		AuditRepo: auditRepo,
	}
}

// Create (POST /buyers)
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadCandidate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), middleware.ActorID(r.Context()), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated("api")
	writeJSON(w, http.StatusCreated, map[string]any{"buyer": lead})
}

// List (GET /buyers) is owner-scoped display glue: filters, substring
// search, pagination, newest update first.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	filter := database.LeadFilter{
		OwnerID:      middleware.ActorID(r.Context()),
		City:         q.Get("city"),
		PropertyType: q.Get("propertyType"),
		Status:       q.Get("status"),
		Timeline:     q.Get("timeline"),
		Search:       q.Get("search"),
		Page:         page,
		Limit:        limit,
	}

	leads, total, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	pages := (total + limit - 1) / limit
	writeJSON(w, http.StatusOK, map[string]any{
		"buyers": leads,
		"pagination": map[string]int{
			"page":  max(page, 1),
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// Get (GET /buyers/{id}) returns the record plus its full history,
// oldest change first. Viewing is open to any signed-in user; the
// ownership check only guards mutation.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.LeadRepo.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if lead == nil {
		writeUseCaseError(w, usecase.NewNotFound())
		return
	}

	history, err := h.AuditRepo.ListByLeadID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"buyer": lead, "history": history})
}

type updateLeadRequest struct {
	usecase.LeadCandidate
	// UpdatedAt is the optimistic-concurrency token: the updatedAt the
	// client last saw. Omitting it skips the staleness check.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Update (PUT /buyers/{id})
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), id, middleware.ActorID(r.Context()), req.LeadCandidate, req.UpdatedAt)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"updatedBuyer": lead})
}

// Delete (DELETE /buyers/{id})
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.DeleteUC.Execute(r.Context(), id, middleware.ActorID(r.Context())); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadDeleted()
	writeJSON(w, http.StatusOK, map[string]string{"message": "buyer deleted successfully"})
}
