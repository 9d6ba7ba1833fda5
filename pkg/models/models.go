package models

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle state of a detection job
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobParameters are the user-supplied knobs for one detection run
type JobParameters struct {
	NumCommunities int     `json:"num_communities"`
	SampleRate     float64 `json:"sample_rate"`
	MaxIterations  int     `json:"max_iterations,omitempty"`
}

// Validate checks parameter ranges that do not depend on the graph;
// graph-dependent checks (k vs node count) happen inside the algorithm.
func (p JobParameters) Validate() error {
	if p.NumCommunities < 1 {
		return fmt.Errorf("num_communities must be >= 1, got %d", p.NumCommunities)
	}
	if p.SampleRate <= 0 || p.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be in (0, 1], got %v", p.SampleRate)
	}
	if p.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be >= 0, got %d", p.MaxIterations)
	}
	return nil
}

// JobProgress reports how far a running job has come
type JobProgress struct {
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// Job tracks one community detection run over an uploaded dataset
type Job struct {
	ID         string        `json:"id"`
	DatasetID  string        `json:"dataset_id"`
	Parameters JobParameters `json:"parameters"`
	Status     JobStatus     `json:"status"`
	Progress   JobProgress   `json:"progress"`
	Error      string        `json:"error,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Dataset describes one uploaded edge list
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"-"`
	NumNodes   int       `json:"num_nodes"`
	NumEdges   int       `json:"num_edges"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// APIResponse is the uniform JSON envelope for every endpoint
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SubmitJobRequest is the body of POST .../detection
type SubmitJobRequest struct {
	NumCommunities int     `json:"num_communities"`
	SampleRate     float64 `json:"sample_rate"`
	MaxIterations  int     `json:"max_iterations"`
}
