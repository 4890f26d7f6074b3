package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// RsEventRepository implements domain.RsEventRepository on PostgreSQL.
type RsEventRepository struct {
	db *pgxpool.Pool
}

func NewRsEventRepository(db *pgxpool.Pool) *RsEventRepository {
	return &RsEventRepository{db: db}
}

const eventColumns = `id, event_name, keyword, user_id`

func (r *RsEventRepository) scanEvent(row pgx.Row) (*domain.RsEvent, error) {
	var e domain.RsEvent
	err := row.Scan(&e.ID, &e.EventName, &e.Keyword, &e.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan rs event: %w", err)
	}
	return &e, nil
}

func (r *RsEventRepository) FindByID(ctx context.Context, id int64) (*domain.RsEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM rs_event WHERE id = $1`
	return r.scanEvent(r.db.QueryRow(ctx, query, id))
}

func (r *RsEventRepository) FindByEventName(ctx context.Context, eventName string) (*domain.RsEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM rs_event WHERE event_name = $1`
	return r.scanEvent(r.db.QueryRow(ctx, query, eventName))
}

func (r *RsEventRepository) FindByIDAndEventName(ctx context.Context, id int64, eventName string) (*domain.RsEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM rs_event WHERE id = $1 AND event_name = $2`
	return r.scanEvent(r.db.QueryRow(ctx, query, id, eventName))
}

func (r *RsEventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rs_event WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check rs event exists by id: %w", err)
	}
	return exists, nil
}

func (r *RsEventRepository) ExistsByEventName(ctx context.Context, eventName string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rs_event WHERE event_name = $1)`
	if err := r.db.QueryRow(ctx, query, eventName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check rs event exists by event name: %w", err)
	}
	return exists, nil
}

func (r *RsEventRepository) ExistsByIDAndEventName(ctx context.Context, id int64, eventName string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rs_event WHERE id = $1 AND event_name = $2)`
	if err := r.db.QueryRow(ctx, query, id, eventName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check rs event exists by id and event name: %w", err)
	}
	return exists, nil
}

func (r *RsEventRepository) Create(ctx context.Context, e *domain.RsEvent) (int64, error) {
	query := `INSERT INTO rs_event (event_name, keyword, user_id) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, e.EventName, e.Keyword, e.UserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert rs event: %w", err)
	}
	e.ID = id
	return id, nil
}

func (r *RsEventRepository) Update(ctx context.Context, e *domain.RsEvent) error {
	query := `UPDATE rs_event SET event_name = $1, keyword = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, e.EventName, e.Keyword, e.ID); err != nil {
		return fmt.Errorf("update rs event: %w", err)
	}
	return nil
}

func (r *RsEventRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rs_event WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rs event by id: %w", err)
	}
	return nil
}

func (r *RsEventRepository) DeleteByEventName(ctx context.Context, eventName string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rs_event WHERE event_name = $1`, eventName); err != nil {
		return fmt.Errorf("delete rs event by event name: %w", err)
	}
	return nil
}

func (r *RsEventRepository) DeleteByIDAndEventName(ctx context.Context, id int64, eventName string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rs_event WHERE id = $1 AND event_name = $2`, id, eventName); err != nil {
		return fmt.Errorf("delete rs event by id and event name: %w", err)
	}
	return nil
}

func (r *RsEventRepository) List(ctx context.Context) ([]domain.RsEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM rs_event ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rs events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.RsEvent, 0)
	for rows.Next() {
		var e domain.RsEvent
		if err := rows.Scan(&e.ID, &e.EventName, &e.Keyword, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan rs event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rs events: %w", err)
	}
	return events, nil
}

func (r *RsEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rs_event`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rs events: %w", err)
	}
	return count, nil
}
