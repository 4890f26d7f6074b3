package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/rslist-service/internal/core/domain"
	"github.com/duynhne/rslist-service/middleware"
)

// RsEventService resolves identifying request parameters against the event
// store and enforces the event-name uniqueness and user referential rules.
type RsEventService struct {
	events domain.RsEventRepository
	users  domain.UserRepository
}

func NewRsEventService(events domain.RsEventRepository, users domain.UserRepository) *RsEventService {
	return &RsEventService{events: events, users: users}
}

func (s *RsEventService) List(ctx context.Context) ([]domain.RsEvent, error) {
	ctx, span := middleware.StartSpan(ctx, "rsevent.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list rs events: %w", err)
	}
	return events, nil
}

// FindByParams resolves an event from the given optional parameters, with the
// same disambiguation rules as UserService.FindByParams.
func (s *RsEventService) FindByParams(ctx context.Context, id *int64, eventName *string) (*domain.RsEvent, error) {
	ctx, span := middleware.StartSpan(ctx, "rsevent.find", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	var (
		event *domain.RsEvent
		err   error
	)
	switch {
	case id == nil && eventName == nil:
		return nil, &domain.MissingParamError{Params: []string{"eventName", "id"}}
	case eventName == nil:
		event, err = s.events.FindByID(ctx, *id)
	case id == nil:
		event, err = s.events.FindByEventName(ctx, *eventName)
	default:
		event, err = s.events.FindByIDAndEventName(ctx, *id, *eventName)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find rs event: %w", err)
	}

	span.SetAttributes(attribute.Bool("rsevent.found", event != nil))
	return event, nil
}

// Create persists a new event after verifying the owning user exists and the
// event name is free. Both checks run before the insert as separate store
// calls, so a concurrent writer can slip between them. Accepted.
func (s *RsEventService) Create(ctx context.Context, req domain.CreateRsEventRequest) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "rsevent.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("rsevent.name", req.EventName),
		attribute.Int64("rsevent.user_id", req.UserID),
	))
	defer span.End()

	userExists, err := s.users.ExistsByID(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("check user %d: %w", req.UserID, err)
	}
	if !userExists {
		span.SetAttributes(attribute.Bool("rsevent.created", false))
		return 0, domain.ErrUserNotExist
	}

	nameExists, err := s.events.ExistsByEventName(ctx, req.EventName)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("check event name %q: %w", req.EventName, err)
	}
	if nameExists {
		span.SetAttributes(attribute.Bool("rsevent.created", false))
		return 0, &domain.ResourceExistsError{Resource: "event name", Value: req.EventName}
	}

	event := &domain.RsEvent{
		EventName: req.EventName,
		Keyword:   req.Keyword,
		UserID:    req.UserID,
	}
	id, err := s.events.Create(ctx, event)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("create rs event %q: %w", req.EventName, err)
	}

	span.SetAttributes(
		attribute.Int64("rsevent.id", id),
		attribute.Bool("rsevent.created", true),
	)
	return id, nil
}

// Update applies a partial update to the event with the given id. Checks run
// in a fixed order: body id must match the target id, the event must exist,
// and the body's user id must name the stored owner. Absent eventName or
// keyword fields keep their stored values.
func (s *RsEventService) Update(ctx context.Context, id int64, req domain.UpdateRsEventRequest) error {
	ctx, span := middleware.StartSpan(ctx, "rsevent.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("rsevent.id", id),
	))
	defer span.End()

	if req.ID == nil || *req.ID != id {
		return domain.ErrIDMismatch
	}

	existing, err := s.events.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("find rs event %d: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("update rs event %d: %w", id, domain.ErrNotFound)
	}

	if req.UserID == nil || *req.UserID != existing.UserID {
		return domain.ErrUserIDIncorrect
	}

	if req.EventName != nil {
		existing.EventName = *req.EventName
	}
	if req.Keyword != nil {
		existing.Keyword = *req.Keyword
	}

	if err := s.events.Update(ctx, existing); err != nil {
		span.RecordError(err)
		return fmt.Errorf("update rs event %d: %w", id, err)
	}

	span.SetAttributes(attribute.Bool("rsevent.updated", true))
	return nil
}

// DeleteByParams deletes the event resolved by the same disambiguation as
// FindByParams.
func (s *RsEventService) DeleteByParams(ctx context.Context, id *int64, eventName *string) error {
	ctx, span := middleware.StartSpan(ctx, "rsevent.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	switch {
	case id == nil && eventName == nil:
		return &domain.MissingParamError{Params: []string{"eventName", "id"}}

	case eventName == nil:
		exists, err := s.events.ExistsByID(ctx, *id)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check rs event by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete rs event by id %d: %w", *id, domain.ErrNotFound)
		}
		return s.events.DeleteByID(ctx, *id)

	case id == nil:
		exists, err := s.events.ExistsByEventName(ctx, *eventName)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check rs event by event name: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete rs event by event name %q: %w", *eventName, domain.ErrNotFound)
		}
		return s.events.DeleteByEventName(ctx, *eventName)

	default:
		exists, err := s.events.ExistsByIDAndEventName(ctx, *id, *eventName)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check rs event by id and event name: %w", err)
		}
		if !exists {
			return fmt.Errorf("delete rs event by id %d and event name %q: %w", *id, *eventName, domain.ErrNotFound)
		}
		return s.events.DeleteByIDAndEventName(ctx, *id, *eventName)
	}
}
