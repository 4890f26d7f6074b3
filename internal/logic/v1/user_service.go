package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/rslist-service/internal/core/domain"
	"github.com/duynhne/rslist-service/middleware"
)

const (
	defaultPageSize  = 10
	defaultPageIndex = 1
)

// UserService resolves identifying request parameters against the user store
// and enforces the username uniqueness rule on registration.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns one page of users. pageIndex is 1-based; non-positive values
// fall back to the defaults (pageSize 10, pageIndex 1).
func (s *UserService) List(ctx context.Context, pageSize, pageIndex int) ([]domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("page.size", pageSize),
		attribute.Int("page.index", pageIndex),
	))
	defer span.End()

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageIndex <= 0 {
		pageIndex = defaultPageIndex
	}

	users, err := s.users.List(ctx, pageSize, (pageIndex-1)*pageSize)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByParams resolves a user from the given optional parameters. With both
// id and username present the conjunction must match a single record. A miss
// returns (nil, nil); no parameter at all is a MissingParamError.
func (s *UserService) FindByParams(ctx context.Context, id *int64, username *string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.find", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	var (
		user *domain.User
		err  error
	)
	switch {
	case id == nil && username == nil:
		return nil, &domain.MissingParamError{Params: []string{"username", "id"}}
	case username == nil:
		user, err = s.users.FindByID(ctx, *id)
	case id == nil:
		user, err = s.users.FindByUsername(ctx, *username)
	default:
		user, err = s.users.FindByIDAndUsername(ctx, *id, *username)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	span.SetAttributes(attribute.Bool("user.found", user != nil))
	return user, nil
}

// Create registers a user. Votes is always DefaultVotes; any client-supplied
// value was already discarded when building the domain record.
//
// The exists check and the insert are two separate store calls; concurrent
// registrations of the same username can race past the check. Accepted.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "user.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.username", req.Username),
	))
	defer span.End()

	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("check username %q: %w", req.Username, err)
	}
	if exists {
		span.SetAttributes(attribute.Bool("user.created", false))
		return 0, &domain.ResourceExistsError{Resource: "username", Value: req.Username}
	}

	user := &domain.User{
		Username: req.Username,
		Gender:   req.Gender,
		Age:      req.Age,
		Email:    req.Email,
		Phone:    req.Phone,
		Votes:    domain.DefaultVotes,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("create user %q: %w", req.Username, err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", id),
		attribute.Bool("user.created", true),
	)
	return id, nil
}

// DeleteByParams deletes the user resolved by the same disambiguation as
// FindByParams. The store cascades the user's events.
func (s *UserService) DeleteByParams(ctx context.Context, id *int64, username *string) error {
	ctx, span := middleware.StartSpan(ctx, "user.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	switch {
	case id == nil && username == nil:
		return &domain.MissingParamError{Params: []string{"username", "id"}}

	case username == nil:
		exists, err := s.users.ExistsByID(ctx, *id)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check user by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete user by id %d: %w", *id, domain.ErrNotFound)
		}
		return s.users.DeleteByID(ctx, *id)

	case id == nil:
		exists, err := s.users.ExistsByUsername(ctx, *username)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check user by username: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete user by username %q: %w", *username, domain.ErrNotFound)
		}
		return s.users.DeleteByUsername(ctx, *username)

	default:
		exists, err := s.users.ExistsByIDAndUsername(ctx, *id, *username)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check user by id and username: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete user by id %d and username %q: %w", *id, *username, domain.ErrNotFound)
		}
		return s.users.DeleteByIDAndUsername(ctx, *id, *username)
	}
}
