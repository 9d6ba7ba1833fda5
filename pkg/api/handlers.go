package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/telliott/graph-community-service/pkg/graph"
	"github.com/telliott/graph-community-service/pkg/models"
	"github.com/telliott/graph-community-service/pkg/service"
)

// Handlers bundles the services the HTTP layer dispatches into
type Handlers struct {
	datasets *service.DatasetService
	jobs     *service.JobService
	started  time.Time
}

// NewHandlers creates the handler set
func NewHandlers(datasets *service.DatasetService, jobs *service.JobService) *Handlers {
	return &Handlers{
		datasets: datasets,
		jobs:     jobs,
		started:  time.Now(),
	}
}

// UploadDataset accepts a plain-text edge list in the request body.
// The dataset name comes from the ?name query parameter.
func (h *Handlers) UploadDataset(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "unnamed"
	}

	dataset, err := h.datasets.Upload(name, r.Body)
	if err != nil {
		if errors.Is(err, graph.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Malformed edge list", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Dataset uploaded", dataset)
}

// ListDatasets returns all uploaded datasets
func (h *Handlers) ListDatasets(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "Datasets listed", h.datasets.List())
}

// GetDataset returns one dataset's metadata
func (h *Handlers) GetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := mux.Vars(r)["datasetId"]

	dataset, err := h.datasets.Get(datasetID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Dataset not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Dataset found", dataset)
}

// DeleteDataset removes a dataset and its stored file
func (h *Handlers) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := mux.Vars(r)["datasetId"]

	if err := h.datasets.Delete(datasetID); err != nil {
		writeError(w, http.StatusNotFound, "Dataset not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Dataset deleted", nil)
}

// StartDetection submits a community detection job for a dataset
func (h *Handlers) StartDetection(w http.ResponseWriter, r *http.Request) {
	datasetID := mux.Vars(r)["datasetId"]

	var req models.SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	params := models.JobParameters{
		NumCommunities: req.NumCommunities,
		SampleRate:     req.SampleRate,
		MaxIterations:  req.MaxIterations,
	}

	job, err := h.jobs.Submit(datasetID, params)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "Dataset not found", err)
			return
		}
		writeError(w, http.StatusBadRequest, "Job rejected", err)
		return
	}

	jobsSubmittedTotal.Inc()
	writeSuccess(w, http.StatusAccepted, "Job submitted", job)
}

// GetJob returns job status and progress
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	job, err := h.jobs.Get(jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Job not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Job found", job)
}

// CancelJob aborts a queued or running job
func (h *Handlers) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	if err := h.jobs.Cancel(jobID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "Job not found", err)
			return
		}
		writeError(w, http.StatusConflict, "Job not cancellable", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Job cancelled", nil)
}

// GetJobResult returns the communities found by a completed job
func (h *Handlers) GetJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	job, err := h.jobs.Get(jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Job not found", err)
		return
	}
	if job.Status != models.JobStatusCompleted {
		writeError(w, http.StatusConflict, "Job not completed", errors.New("status: "+string(job.Status)))
		return
	}

	result, err := h.jobs.GetResult(jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Result not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Result found", result)
}

// HealthCheck reports service liveness
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "OK", map[string]interface{}{
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}
