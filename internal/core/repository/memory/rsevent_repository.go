package memory

import (
	"context"
	"sort"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// RsEventRepository implements domain.RsEventRepository over the shared Store.
type RsEventRepository struct {
	store *Store
}

func (r *RsEventRepository) FindByID(ctx context.Context, id int64) (*domain.RsEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if e, ok := r.store.events[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *RsEventRepository) FindByEventName(ctx context.Context, eventName string) (*domain.RsEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, e := range r.store.events {
		if e.EventName == eventName {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *RsEventRepository) FindByIDAndEventName(ctx context.Context, id int64, eventName string) (*domain.RsEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if e, ok := r.store.events[id]; ok && e.EventName == eventName {
		return &e, nil
	}
	return nil, nil
}

func (r *RsEventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	e, err := r.FindByID(ctx, id)
	return e != nil, err
}

func (r *RsEventRepository) ExistsByEventName(ctx context.Context, eventName string) (bool, error) {
	e, err := r.FindByEventName(ctx, eventName)
	return e != nil, err
}

func (r *RsEventRepository) ExistsByIDAndEventName(ctx context.Context, id int64, eventName string) (bool, error) {
	e, err := r.FindByIDAndEventName(ctx, id, eventName)
	return e != nil, err
}

func (r *RsEventRepository) Create(ctx context.Context, e *domain.RsEvent) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e.ID = r.store.nextEvtID
	r.store.nextEvtID++
	r.store.events[e.ID] = *e
	return e.ID, nil
}

func (r *RsEventRepository) Update(ctx context.Context, e *domain.RsEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[e.ID]; ok {
		r.store.events[e.ID] = *e
	}
	return nil
}

func (r *RsEventRepository) DeleteByID(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.events, id)
	return nil
}

func (r *RsEventRepository) DeleteByEventName(ctx context.Context, eventName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, e := range r.store.events {
		if e.EventName == eventName {
			delete(r.store.events, id)
			return nil
		}
	}
	return nil
}

func (r *RsEventRepository) DeleteByIDAndEventName(ctx context.Context, id int64, eventName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e, ok := r.store.events[id]; ok && e.EventName == eventName {
		delete(r.store.events, id)
	}
	return nil
}

func (r *RsEventRepository) List(ctx context.Context) ([]domain.RsEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]domain.RsEvent, 0, len(r.store.events))
	for _, e := range r.store.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *RsEventRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.events)), nil
}
