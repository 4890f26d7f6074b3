// Package memory provides an in-memory implementation of the repository
// interfaces. It backs local development when no database is configured and
// serves as the fixture store in logic-layer tests.
package memory

import (
	"sync"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// Store holds both tables behind one mutex so the user→event delete cascade
// is observed atomically, matching the FK cascade of the SQL schema.
type Store struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	events     map[int64]domain.RsEvent
	nextUserID int64
	nextEvtID  int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		events:     make(map[int64]domain.RsEvent),
		nextUserID: 1,
		nextEvtID:  1,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Events returns the rs event repository view of the store.
func (s *Store) Events() *RsEventRepository {
	return &RsEventRepository{store: s}
}
