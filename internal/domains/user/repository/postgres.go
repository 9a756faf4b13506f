package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/user"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperror"
)

// PostgresRepository implements user.Repository on pgxpool. User rows are
// not cached: the account set is small and credential reads should always
// hit the source of truth.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `id, username, full_name, password_hash, roles, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.PasswordHash,
		&u.Roles,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("User", username)
		}
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return u, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	stored := u.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
        INSERT INTO users (id, username, full_name, password_hash, roles)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `,
		stored.ID,
		stored.Username,
		stored.FullName,
		stored.PasswordHash,
		stored.Roles,
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperror.NewConflict("Username exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, mutate func(*user.User) error) (*user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update user: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("lock user %s: %w", id, err)
	}

	username := u.Username
	if err := mutate(u); err != nil {
		return nil, err
	}
	u.Username = username

	err = tx.QueryRow(ctx, `
        UPDATE users
        SET full_name = $2, password_hash = $3, roles = $4, updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `, id, u.FullName, u.PasswordHash, u.Roles).Scan(&u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("User", id)
	}
	return nil
}

func (r *PostgresRepository) Query(ctx context.Context, f user.Filter) ([]user.User, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ID != "" {
		where = append(where, "id = "+arg(f.ID))
	}
	if f.Username != "" {
		where = append(where, "username ILIKE '%' || "+arg(database.EscapeLike(f.Username))+" || '%'")
	}
	if f.FullName != "" {
		where = append(where, "full_name ILIKE '%' || "+arg(database.EscapeLike(f.FullName))+" || '%'")
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
