package jobs

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidJobID       = "некорректный ID работы"
)

type Handler struct {
	jobs    JobsCollection
	service JobsService
	logger  Logger
}

func NewHandler(jobs JobsCollection, service JobsService, logger Logger) *Handler {
	return &Handler{
		jobs:    jobs,
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/jobs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.jobs.Load(r.Context())
	if snap.Err != nil {
		h.logger.Warn("GET /jobs - Jobs fetch failed: %v", snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewJobResponse))
}

// Retry POST /api/v1/jobs/retry
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	snap := h.jobs.Retry(r.Context())

	h.logger.Info("POST /jobs/retry - Jobs refetched: count=%d, failed=%t", len(snap.Items), snap.Err != nil)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewJobResponse))
}

// Create POST /api/v1/jobs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /jobs - Invalid request body: %v", err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	job, err := h.service.CreateJob(r.Context(), req.toAPI())
	if err != nil {
		h.logger.Error("POST /jobs - Failed to create job: name=%s, error=%v", req.Name, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("POST /jobs - Job created: job_id=%s", job.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewJobResponse(*job))
}

// Delete DELETE /api/v1/jobs/{jobId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]
	if jobID == "" {
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	if err := h.service.DeleteJob(r.Context(), jobID); err != nil {
		h.logger.Error("DELETE /jobs/{jobId} - Failed to delete job: job_id=%s, error=%v", jobID, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("DELETE /jobs/{jobId} - Job deleted: job_id=%s", jobID)
	handlers.RespondNoContent(w)
}

