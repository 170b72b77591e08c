// Package store keeps parsed diaries in memory for the serve mode.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mwidmer/mdp/internal/doctree"
)

// Diary is one uploaded, parsed document. The tree is immutable after
// construction, so concurrent readers need no locking beyond the registry's.
type Diary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`

	Tree   *doctree.Tree `json:"-"`
	Source string        `json:"-"`
}

// Store is a mutex-guarded diary registry keyed by ULID.
type Store struct {
	mu      sync.RWMutex
	diaries map[string]*Diary
}

func New() *Store {
	return &Store{diaries: make(map[string]*Diary)}
}

// Put registers a parsed diary under a fresh ULID and returns it.
func (s *Store) Put(filename, source string, tree *doctree.Tree) *Diary {
	d := &Diary{
		ID:        ulid.Make().String(),
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
		Tree:      tree,
		Source:    source,
	}
	s.mu.Lock()
	s.diaries[d.ID] = d
	s.mu.Unlock()
	return d
}

// Get looks a diary up by ID.
func (s *Store) Get(id string) (*Diary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diaries[id]
	return d, ok
}

// Delete removes a diary; it reports whether the ID existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diaries[id]; !ok {
		return false
	}
	delete(s.diaries, id)
	return true
}

// List returns all diaries ordered by ID (ULIDs sort by creation time).
func (s *Store) List() []*Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Diary, 0, len(s.diaries))
	for _, d := range s.diaries {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of stored diaries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.diaries)
}
