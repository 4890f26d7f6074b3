package domain

import "context"

// UserRepository is the store abstraction for users. Find methods return
// (nil, nil) when no record matches; only infrastructure failures are errors.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByIDAndUsername(ctx context.Context, id int64, username string) (*User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByIDAndUsername(ctx context.Context, id int64, username string) (bool, error)
	// Create persists the user and returns the store-assigned id.
	Create(ctx context.Context, u *User) (int64, error)
	// Delete methods cascade to the user's events at the store level.
	DeleteByID(ctx context.Context, id int64) error
	DeleteByUsername(ctx context.Context, username string) error
	DeleteByIDAndUsername(ctx context.Context, id int64, username string) error
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

// RsEventRepository is the store abstraction for rs events.
type RsEventRepository interface {
	FindByID(ctx context.Context, id int64) (*RsEvent, error)
	FindByEventName(ctx context.Context, eventName string) (*RsEvent, error)
	FindByIDAndEventName(ctx context.Context, id int64, eventName string) (*RsEvent, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEventName(ctx context.Context, eventName string) (bool, error)
	ExistsByIDAndEventName(ctx context.Context, id int64, eventName string) (bool, error)
	Create(ctx context.Context, e *RsEvent) (int64, error)
	// Update overwrites the stored event with e (matched by e.ID).
	Update(ctx context.Context, e *RsEvent) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByEventName(ctx context.Context, eventName string) error
	DeleteByIDAndEventName(ctx context.Context, id int64, eventName string) error
	List(ctx context.Context) ([]RsEvent, error)
	Count(ctx context.Context) (int64, error)
}
