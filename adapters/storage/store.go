// Package storage persists calculated quotes for auditing.
// Backends: in-memory and file (one JSON document per quote).
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notary-pricing/core/types"
)

// StoredQuote is one audited quote
type StoredQuote struct {
	ID          string             `json:"id"`
	ServiceType types.ServiceType  `json:"serviceType"`
	Address     string             `json:"address,omitempty"`
	ScheduledAt time.Time          `json:"scheduledAt"`
	Total       string             `json:"total"`
	Result      *types.QuoteResult `json:"result"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ListFilter narrows List results
type ListFilter struct {
	ServiceType types.ServiceType
	Since       time.Time
	Limit       int
}

// Store is the quote audit interface
type Store interface {
	// Record stores a calculated quote. Implements engine.Recorder.
	Record(ctx context.Context, req types.QuoteRequest, res *types.QuoteResult) error

	// Get retrieves a stored quote by ID
	Get(ctx context.Context, id string) (*StoredQuote, error)

	// List returns stored quotes matching the filter, newest first
	List(ctx context.Context, filter ListFilter) ([]*StoredQuote, error)

	// Close releases backend resources
	Close() error
}

func buildRecord(req types.QuoteRequest, res *types.QuoteResult) *StoredQuote {
	return &StoredQuote{
		ID:          uuid.NewString(),
		ServiceType: req.ServiceType,
		Address:     req.Location.Address,
		ScheduledAt: req.ScheduledAt,
		Total:       res.Total.String(),
		Result:      res,
		CreatedAt:   time.Now().UTC(),
	}
}

func matches(q *StoredQuote, f ListFilter) bool {
	if f.ServiceType != "" && q.ServiceType != f.ServiceType {
		return false
	}
	if !f.Since.IsZero() && q.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// MemoryStore keeps quotes in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	quotes map[string]*StoredQuote
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quotes: make(map[string]*StoredQuote)}
}

// Record implements Store
func (s *MemoryStore) Record(_ context.Context, req types.QuoteRequest, res *types.QuoteResult) error {
	q := buildRecord(req, res)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.ID] = q
	return nil
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, id string) (*StoredQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote not found: %s", id)
	}
	return q, nil
}

// List implements Store
func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]*StoredQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*StoredQuote
	for _, q := range s.quotes {
		if matches(q, filter) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Close implements Store
func (s *MemoryStore) Close() error { return nil }

// FileStore writes one JSON document per quote under a directory
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create quote store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Record implements Store
func (s *FileStore) Record(_ context.Context, req types.QuoteRequest, res *types.QuoteResult) error {
	q := buildRecord(req, res)
	raw, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path(q.ID), raw, 0644)
}

// Get implements Store
func (s *FileStore) Get(_ context.Context, id string) (*StoredQuote, error) {
	raw, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("quote not found: %s", id)
	}
	var q StoredQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// List implements Store
func (s *FileStore) List(_ context.Context, filter ListFilter) ([]*StoredQuote, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []*StoredQuote
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var q StoredQuote
		if err := json.Unmarshal(raw, &q); err != nil {
			continue
		}
		if matches(&q, filter) {
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Close implements Store
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
