package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// UserRepository implements domain.UserRepository on PostgreSQL.
// Deleting a user cascades to its rs_event rows via the FK constraint.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, gender, age, email, phone, votes`

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Gender, &u.Age, &u.Email, &u.Phone, &u.Votes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE username = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindByIDAndUsername(ctx context.Context, id int64, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1 AND username = $2`
	return r.scanUser(r.db.QueryRow(ctx, query, id, username))
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "user" WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists by id: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "user" WHERE username = $1)`
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists by username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByIDAndUsername(ctx context.Context, id int64, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "user" WHERE id = $1 AND username = $2)`
	if err := r.db.QueryRow(ctx, query, id, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists by id and username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	query := `INSERT INTO "user" (username, gender, age, email, phone, votes)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, u.Username, u.Gender, u.Age, u.Email, u.Phone, u.Votes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return id, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user by id: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE username = $1`, username); err != nil {
		return fmt.Errorf("delete user by username: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteByIDAndUsername(ctx context.Context, id int64, username string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1 AND username = $2`, id, username); err != nil {
		return fmt.Errorf("delete user by id and username: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Gender, &u.Age, &u.Email, &u.Phone, &u.Votes); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
