// Package needs holds the company resource ledger and the one-way sink
// interfaces through which the camp simulation touches the rest of the
// game: XP, gold, conditions, queued events, notifications and news.
package needs

import (
	"github.com/talgya/camplife/internal/rng"
)

// Camp resource names.
const (
	ResourceSupplies   = "supplies"
	ResourceMorale     = "morale"
	ResourceRest       = "rest"
	ResourceDiscipline = "discipline"
)

// Store is the company resource ledger. Values are clamped to [0, 100].
type Store interface {
	Get(resource string) int
	Modify(resource string, delta int)
	Set(resource string, value int)
}

// MemoryStore is the in-memory Store implementation.
type MemoryStore struct {
	values map[string]int
}

// NewMemoryStore creates a store with sensible starting levels.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]int{
		ResourceSupplies:   70,
		ResourceMorale:     60,
		ResourceRest:       60,
		ResourceDiscipline: 50,
	}}
}

func (s *MemoryStore) Get(resource string) int {
	return s.values[resource]
}

func (s *MemoryStore) Modify(resource string, delta int) {
	s.Set(resource, s.values[resource]+delta)
}

func (s *MemoryStore) Set(resource string, value int) {
	s.values[resource] = rng.Clamp(value, 0, 100)
}
