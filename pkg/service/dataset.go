package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telliott/graph-community-service/pkg/graph"
	"github.com/telliott/graph-community-service/pkg/models"
)

// DatasetService stores uploaded edge lists on disk and tracks their
// metadata in memory.
type DatasetService struct {
	datasets  map[string]*models.Dataset
	uploadDir string
	mutex     sync.RWMutex
}

// NewDatasetService creates a dataset service writing uploads under
// uploadDir, creating the directory if needed.
func NewDatasetService(uploadDir string) (*DatasetService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DatasetService{
		datasets:  make(map[string]*models.Dataset),
		uploadDir: uploadDir,
	}, nil
}

// Upload persists an edge list and validates it by building the graph
// once. The parsed node and edge counts are recorded on the dataset.
func (s *DatasetService) Upload(name string, content io.Reader) (*models.Dataset, error) {
	datasetID := uuid.New().String()
	path := filepath.Join(s.uploadDir, datasetID+".edgelist")

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("store upload: %w", err)
	}

	// Parse eagerly so malformed files are rejected at upload time.
	el, err := graph.ReadEdgeList(path)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	g, err := graph.FromEdgeList(el)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	dataset := &models.Dataset{
		ID:         datasetID,
		Name:       name,
		FilePath:   path,
		NumNodes:   g.N,
		NumEdges:   g.M,
		UploadedAt: time.Now(),
	}

	s.mutex.Lock()
	s.datasets[datasetID] = dataset
	s.mutex.Unlock()

	log.Info().
		Str("dataset_id", datasetID).
		Str("name", name).
		Int("nodes", g.N).
		Int("edges", g.M).
		Msg("Dataset uploaded")

	return dataset, nil
}

// Get retrieves a dataset by ID
func (s *DatasetService) Get(datasetID string) (*models.Dataset, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dataset, exists := s.datasets[datasetID]
	if !exists {
		return nil, fmt.Errorf("dataset not found: %s", datasetID)
	}
	return dataset, nil
}

// List returns all known datasets
func (s *DatasetService) List() []*models.Dataset {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]*models.Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		out = append(out, d)
	}
	return out
}

// Delete removes a dataset and its file
func (s *DatasetService) Delete(datasetID string) error {
	s.mutex.Lock()
	dataset, exists := s.datasets[datasetID]
	if exists {
		delete(s.datasets, datasetID)
	}
	s.mutex.Unlock()

	if !exists {
		return fmt.Errorf("dataset not found: %s", datasetID)
	}
	if err := os.Remove(dataset.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove dataset file: %w", err)
	}

	log.Info().Str("dataset_id", datasetID).Msg("Dataset deleted")
	return nil
}

// LoadGraph rebuilds the CSR graph for a dataset from its stored file.
// Each job gets a fresh graph: runs mutate betweenness state, so sharing
// one instance across jobs would corrupt concurrent results.
func (s *DatasetService) LoadGraph(datasetID string) (*graph.Graph, error) {
	dataset, err := s.Get(datasetID)
	if err != nil {
		return nil, err
	}
	el, err := graph.ReadEdgeList(dataset.FilePath)
	if err != nil {
		return nil, err
	}
	return graph.FromEdgeList(el)
}
