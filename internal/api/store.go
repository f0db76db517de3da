package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/skipwalk/internal/embedding"
)

type modelRecord[W comparable] struct {
	info ModelInfo
	emb  *embedding.Embeddings[W]
}

// Store holds the embedding sets served by the API, keyed by model id. The
// first model added is the default for requests that name none.
type Store[W comparable] struct {
	mu     sync.RWMutex
	models map[string]*modelRecord[W]
	order  []string
}

func NewStore[W comparable]() *Store[W] {
	return &Store[W]{
		models: make(map[string]*modelRecord[W]),
	}
}

// Add registers e under id, or under a fresh id if id is empty. An existing
// model with the same id is replaced.
func (s *Store[W]) Add(id, name string, e *embedding.Embeddings[W], now time.Time) ModelInfo {
	if id == "" {
		id = uuid.NewString()
	}
	info := ModelInfo{
		ID:        id,
		Object:    "model",
		CreatedAt: now.Unix(),
		Name:      name,
		Words:     e.Len(),
		Dimension: e.Dimension(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		s.order = append(s.order, id)
	}
	s.models[id] = &modelRecord[W]{info: info, emb: e}
	return info
}

// Get returns the model with the given id. An empty id selects the default
// model.
func (s *Store[W]) Get(id string) (*embedding.Embeddings[W], ModelInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == "" {
		if len(s.order) == 0 {
			return nil, ModelInfo{}, false
		}
		id = s.order[0]
	}
	rec, ok := s.models[id]
	if !ok {
		return nil, ModelInfo{}, false
	}
	return rec.emb, rec.info, true
}

func (s *Store[W]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return false
	}
	delete(s.models, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns every model in insertion order.
func (s *Store[W]) List() []ModelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ModelInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.models[id].info)
	}
	return out
}
