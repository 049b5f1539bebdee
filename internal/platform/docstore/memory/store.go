package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var _ docstore.Store = (*Store)(nil)

// Store is an in-process document store. Documents keep insertion order per collection.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	newID       func() string
}

type collection struct {
	ids  []string
	docs map[string]docstore.Fields
}

type Option func(*Store)

// WithIDGenerator overrides the uuid-based id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		collections: map[string]*collection{},
		newID:       func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) QueryAll(ctx context.Context, name string) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.collections[name]
	if !ok {
		return []docstore.Document{}, nil
	}
	out := make([]docstore.Document, 0, len(coll.ids))
	for _, id := range coll.ids {
		out = append(out, docstore.Document{ID: id, Fields: coll.docs[id].Clone()})
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, name string, fields docstore.Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.collection(name)
	id := s.newID()
	for {
		if _, taken := coll.docs[id]; !taken {
			break
		}
		id = s.newID()
	}
	coll.ids = append(coll.ids, id)
	coll.docs[id] = fields.Clone()
	return id, nil
}

func (s *Store) Update(ctx context.Context, name, id string, fields docstore.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return docstore.ErrNotFound
	}
	current, ok := coll.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	coll.docs[id] = current.Merge(fields)
	return nil
}

func (s *Store) Delete(ctx context.Context, name, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return docstore.ErrNotFound
	}
	if _, ok := coll.docs[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(coll.docs, id)
	for i, existing := range coll.ids {
		if existing == id {
			coll.ids = append(coll.ids[:i], coll.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) collection(name string) *collection {
	coll, ok := s.collections[name]
	if !ok {
		coll = &collection{docs: map[string]docstore.Fields{}}
		s.collections[name] = coll
	}
	return coll
}
