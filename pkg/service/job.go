package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telliott/graph-community-service/pkg/girvan"
	"github.com/telliott/graph-community-service/pkg/models"
)

// JobService runs community detection jobs in the background and keeps
// their results for a bounded time.
type JobService struct {
	jobs            map[string]*models.Job
	results         map[string]*girvan.Result
	cancels         map[string]context.CancelFunc
	workers         chan struct{}
	datasetService  *DatasetService
	mutex           sync.RWMutex
	jobTTL          time.Duration
	cleanupInterval time.Duration
}

// NewJobService creates a job service allowing maxWorkers concurrent runs.
// Finished jobs and their results are dropped after ttl.
func NewJobService(datasetService *DatasetService, maxWorkers int, ttl time.Duration) *JobService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	service := &JobService{
		jobs:            make(map[string]*models.Job),
		results:         make(map[string]*girvan.Result),
		cancels:         make(map[string]context.CancelFunc),
		workers:         make(chan struct{}, maxWorkers),
		datasetService:  datasetService,
		jobTTL:          ttl,
		cleanupInterval: 5 * time.Minute,
	}

	go service.cleanupLoop()

	return service
}

// Submit creates and queues a new detection job
func (s *JobService) Submit(datasetID string, params models.JobParameters) (*models.Job, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if _, err := s.datasetService.Get(datasetID); err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	now := time.Now()
	job := &models.Job{
		ID:         jobID,
		DatasetID:  datasetID,
		Parameters: params,
		Status:     models.JobStatusQueued,
		Progress: models.JobProgress{
			Percentage: 0,
			Message:    "Queued",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mutex.Lock()
	s.jobs[jobID] = job
	snapshot := *job
	s.mutex.Unlock()

	log.Info().
		Str("job_id", jobID).
		Str("dataset_id", datasetID).
		Int("k", params.NumCommunities).
		Float64("sample_rate", params.SampleRate).
		Msg("Job submitted")

	go s.processJob(jobID)

	return &snapshot, nil
}

// Get retrieves a job by ID
func (s *JobService) Get(jobID string) (*models.Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	return job, nil
}

// GetResult retrieves the detection result for a completed job
func (s *JobService) GetResult(jobID string) (*girvan.Result, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result, exists := s.results[jobID]
	if !exists {
		return nil, fmt.Errorf("result not found for job: %s", jobID)
	}
	return result, nil
}

// Cancel aborts a queued or running job
func (s *JobService) Cancel(jobID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}
	switch job.Status {
	case models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled:
		return fmt.Errorf("job %s already finished with status %s", jobID, job.Status)
	}

	if cancel, ok := s.cancels[jobID]; ok {
		cancel()
	}
	s.setStatusLocked(job, models.JobStatusCancelled, "Cancelled")

	log.Info().Str("job_id", jobID).Msg("Job cancelled")
	return nil
}

func (s *JobService) processJob(jobID string) {
	// Wait for a worker slot; a cancel during the wait is observed below.
	s.workers <- struct{}{}
	defer func() { <-s.workers }()

	s.mutex.Lock()
	job, exists := s.jobs[jobID]
	if !exists || job.Status != models.JobStatusQueued {
		s.mutex.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[jobID] = cancel
	s.setStatusLocked(job, models.JobStatusRunning, "Loading dataset")
	datasetID := job.DatasetID
	params := job.Parameters
	s.mutex.Unlock()

	defer func() {
		cancel()
		s.mutex.Lock()
		delete(s.cancels, jobID)
		s.mutex.Unlock()
	}()

	g, err := s.datasetService.LoadGraph(datasetID)
	if err != nil {
		s.failJob(jobID, fmt.Errorf("load graph: %w", err))
		return
	}

	config := girvan.NewConfig()
	config.Set("algorithm.num_communities", params.NumCommunities)
	config.Set("algorithm.sample_rate", params.SampleRate)
	config.Set("algorithm.max_iterations", params.MaxIterations)

	s.updateProgress(jobID, 10, "Detecting communities")

	result, err := girvan.Run(g, config, ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Cancel already set the terminal status.
			log.Info().Str("job_id", jobID).Msg("Job run aborted")
			return
		}
		s.failJob(jobID, err)
		return
	}

	s.mutex.Lock()
	if job, ok := s.jobs[jobID]; ok && job.Status == models.JobStatusRunning {
		s.results[jobID] = result
		job.Progress = models.JobProgress{Percentage: 100, Message: "Completed"}
		s.setStatusLocked(job, models.JobStatusCompleted, "Completed")
	}
	s.mutex.Unlock()

	log.Info().
		Str("job_id", jobID).
		Int("communities", result.NumCommunities).
		Int("edges_cut", result.Statistics.EdgesCut).
		Msg("Job completed")
}

func (s *JobService) failJob(jobID string, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists || job.Status != models.JobStatusRunning {
		return
	}
	job.Error = err.Error()
	s.setStatusLocked(job, models.JobStatusFailed, "Failed")

	log.Error().Err(err).Str("job_id", jobID).Msg("Job failed")
}

func (s *JobService) updateProgress(jobID string, pct int, msg string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if job, ok := s.jobs[jobID]; ok && job.Status == models.JobStatusRunning {
		job.Progress = models.JobProgress{Percentage: pct, Message: msg}
		job.UpdatedAt = time.Now()
	}
}

// setStatusLocked updates status and progress message; caller holds mutex.
func (s *JobService) setStatusLocked(job *models.Job, status models.JobStatus, msg string) {
	job.Status = status
	job.Progress.Message = msg
	job.UpdatedAt = time.Now()
}

func (s *JobService) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.jobTTL)

		s.mutex.Lock()
		for id, job := range s.jobs {
			switch job.Status {
			case models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled:
				if job.UpdatedAt.Before(cutoff) {
					delete(s.jobs, id)
					delete(s.results, id)
					log.Debug().Str("job_id", id).Msg("Expired job cleaned up")
				}
			}
		}
		s.mutex.Unlock()
	}
}
