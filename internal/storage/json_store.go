package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/julianstephens/engage/internal/models"
)

type fileStore struct {
	Version int                    `json:"version"`
	Plans   map[string]models.Plan `json:"plans"`
}

// JSONStore is a zero-setup file-backed Provider. It keeps the same
// full-overwrite write semantics as the SQL backends and persists the
// whole file on every save. The editor persists from one goroutine per
// mutation and the server shares one store across handlers, so every
// method takes the store lock.
type JSONStore struct {
	path string

	mu    sync.Mutex
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Plans:   make(map[string]models.Plan),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'engage init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]models.Plan)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the whole file. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) SavePlan(plan models.Plan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Plans[plan.ID] = plan.Clone()
	return s.save()
}

func (s *JSONStore) GetPlan(id string) (models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.store.Plans[id]
	if !ok {
		return models.Plan{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return plan.Clone(), nil
}

// GetAllPlans returns every plan, newest-created first.
func (s *JSONStore) GetAllPlans() ([]models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := make([]models.Plan, 0, len(s.store.Plans))
	for _, p := range s.store.Plans {
		plans = append(plans, p.Clone())
	}
	slices.SortFunc(plans, func(a, b models.Plan) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return 0
		}
	})
	return plans, nil
}

func (s *JSONStore) DeletePlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Plans[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.store.Plans, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
