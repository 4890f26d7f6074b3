package memory

import (
	"context"
	"sort"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// UserRepository implements domain.UserRepository over the shared Store.
// Find methods return (nil, nil) on a miss, matching the psql implementation.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByIDAndUsername(ctx context.Context, id int64, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.users[id]; ok && u.Username == username {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	u, err := r.FindByID(ctx, id)
	return u != nil, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.FindByUsername(ctx, username)
	return u != nil, err
}

func (r *UserRepository) ExistsByIDAndUsername(ctx context.Context, id int64, username string) (bool, error) {
	u, err := r.FindByIDAndUsername(ctx, id, username)
	return u != nil, err
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u.ID = r.store.nextUserID
	r.store.nextUserID++
	r.store.users[u.ID] = *u
	return u.ID, nil
}

// deleteLocked removes the user and cascades to its events. Caller holds the
// write lock.
func (r *UserRepository) deleteLocked(id int64) {
	delete(r.store.users, id)
	for eid, e := range r.store.events {
		if e.UserID == id {
			delete(r.store.events, eid)
		}
	}
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.deleteLocked(id)
	return nil
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, u := range r.store.users {
		if u.Username == username {
			r.deleteLocked(id)
			return nil
		}
	}
	return nil
}

func (r *UserRepository) DeleteByIDAndUsername(ctx context.Context, id int64, username string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok && u.Username == username {
		r.deleteLocked(id)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.users)), nil
}
