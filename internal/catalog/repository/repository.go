// Package repository provides the in-memory lot catalog store.
// The catalog is loaded once at startup (demo data or an uploaded workbook)
// and is read-only between replacements.
package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// WeightClass is the coarse weight bucket used as a price multiplier proxy.
type WeightClass string

const (
	WeightLight  WeightClass = "Light"
	WeightMedium WeightClass = "Medium"
	WeightHeavy  WeightClass = "Heavy"
)

// ParseWeightClass maps a free-form cell value onto a recognized weight class.
func ParseWeightClass(value string) (WeightClass, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "light":
		return WeightLight, nil
	case "medium":
		return WeightMedium, nil
	case "heavy":
		return WeightHeavy, nil
	default:
		return "", fmt.Errorf("unrecognized weight class %q", value)
	}
}

// LotRecord is an immutable catalog entry for a single auction lot.
type LotRecord struct {
	ID          int
	SaleNumber  string
	WeightClass WeightClass
	Material    string
	Description string
}

// Repository is the read interface plus the wholesale replacement used by uploads.
type Repository interface {
	Get(id int) (LotRecord, bool)
	List() []LotRecord
	Replace(records []LotRecord) error
	Size() int
}

// InMemory holds the catalog in a map guarded by a RWMutex. Quote computation
// only reads; Replace swaps the whole set under the write lock.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[int]LotRecord
	ordered []LotRecord
}

// NewInMemory creates a repository seeded with the given records.
// Seeding panics on invalid data since it only receives compiled-in demo lots.
func NewInMemory(seed []LotRecord) *InMemory {
	repo := &InMemory{byID: make(map[int]LotRecord)}
	if err := repo.Replace(seed); err != nil {
		panic("invalid seed catalog: " + err.Error())
	}
	return repo
}

// Get returns the record for the given lot id.
func (r *InMemory) Get(id int) (LotRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[id]
	return record, ok
}

// List returns all records ordered by lot id.
func (r *InMemory) List() []LotRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LotRecord, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Size returns the number of records currently loaded.
func (r *InMemory) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Replace swaps the catalog wholesale. The incoming set is validated first so
// a bad upload never leaves a partially loaded catalog behind.
func (r *InMemory) Replace(records []LotRecord) error {
	byID := make(map[int]LotRecord, len(records))
	for _, record := range records {
		if record.ID <= 0 {
			return fmt.Errorf("lot id must be positive, got %d", record.ID)
		}
		if _, dup := byID[record.ID]; dup {
			return fmt.Errorf("duplicate lot id %d", record.ID)
		}
		if _, err := ParseWeightClass(string(record.WeightClass)); err != nil {
			return fmt.Errorf("lot %d: %w", record.ID, err)
		}
		byID[record.ID] = record
	}

	ordered := make([]LotRecord, 0, len(byID))
	for _, record := range byID {
		ordered = append(ordered, record)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	r.mu.Lock()
	r.byID = byID
	r.ordered = ordered
	r.mu.Unlock()
	return nil
}

var _ Repository = (*InMemory)(nil)
