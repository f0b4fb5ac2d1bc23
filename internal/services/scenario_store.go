package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"orderplan-go-api/internal/models"
)

var (
	ErrScenarioNameRequired = errors.New("scenario name is required")
	ErrDuplicateScenario    = errors.New("scenario already exists")
	ErrScenarioNotFound     = errors.New("scenario not found")
	ErrBuiltinScenario      = errors.New("built-in scenarios cannot be deleted")
)

// ScenarioMirror receives custom scenarios as they are saved and deleted.
type ScenarioMirror interface {
	Publish(ctx context.Context, s models.Scenario) error
	Remove(ctx context.Context, s models.Scenario) error
}

// ScenarioStore holds named parameter sets in memory. Scenarios are never
// modified after creation and only custom ones can be deleted.
type ScenarioStore struct {
	mu        sync.RWMutex
	scenarios []models.Scenario
	mirror    ScenarioMirror
	now       func() time.Time
}

// NewScenarioStore seeds a store with the given built-in scenarios. mirror may be nil.
func NewScenarioStore(builtin []models.Scenario, mirror ScenarioMirror) *ScenarioStore {
	scenarios := make([]models.Scenario, len(builtin))
	for i, s := range builtin {
		s.IsCustom = false
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		scenarios[i] = s
	}
	return &ScenarioStore{
		scenarios: scenarios,
		mirror:    mirror,
		now:       time.Now,
	}
}

// List returns all scenarios, built-in first, in creation order.
func (s *ScenarioStore) List() []models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// Get looks a scenario up by name, ignoring case.
func (s *ScenarioStore) Get(name string) (models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(name); i >= 0 {
		return s.scenarios[i], nil
	}
	return models.Scenario{}, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
}

// Save stores params under a new custom scenario. Names are unique ignoring case.
func (s *ScenarioStore) Save(ctx context.Context, name, description string, params models.SimulationParameters) (models.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Scenario{}, ErrScenarioNameRequired
	}

	s.mu.Lock()
	if s.index(name) >= 0 {
		s.mu.Unlock()
		return models.Scenario{}, fmt.Errorf("%w: %q", ErrDuplicateScenario, name)
	}
	sc := models.Scenario{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Parameters:  params,
		Color:       models.CustomScenarioColor,
		IsCustom:    true,
		CreatedAt:   s.now().UTC(),
	}
	s.scenarios = append(s.scenarios, sc)
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.Publish(ctx, sc); err != nil {
			log.Printf("⚠️  Failed to mirror scenario %q: %v", sc.Name, err)
		}
	}
	return sc, nil
}

// Delete removes a custom scenario.
func (s *ScenarioStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	i := s.index(name)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	sc := s.scenarios[i]
	if !sc.IsCustom {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrBuiltinScenario, sc.Name)
	}
	s.scenarios = append(s.scenarios[:i:i], s.scenarios[i+1:]...)
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.Remove(ctx, sc); err != nil {
			log.Printf("⚠️  Failed to remove mirrored scenario %q: %v", sc.Name, err)
		}
	}
	return nil
}

func (s *ScenarioStore) index(name string) int {
	name = strings.TrimSpace(name)
	for i, sc := range s.scenarios {
		if strings.EqualFold(sc.Name, name) {
			return i
		}
	}
	return -1
}
