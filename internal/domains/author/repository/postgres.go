package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperror"
	"library-backend/pkg/cache"
)

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute
)

// PostgresRepository implements author.Repository on pgxpool with an
// optional read-through cache for by-id lookups. Cache may be nil.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) *PostgresRepository {
	return &PostgresRepository{pool: pool, cache: cache}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*author.Author, error) {
	if r.cache != nil {
		var a author.Author
		if found, err := r.cache.Get(ctx, authorCacheKeyPrefix+id, &a); err == nil && found {
			return &a, nil
		}
	}

	query := `
        SELECT id, full_name, about, genres, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.FullName,
		&a.About,
		&a.Genres,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Author", id)
		}
		return nil, fmt.Errorf("get author %s: %w", id, err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, authorCacheKeyPrefix+id, a, authorCacheTTL)
	}
	return &a, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, a *author.Author) (*author.Author, error) {
	stored := a.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	query := `
        INSERT INTO authors (id, full_name, about, genres)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `

	err := r.pool.QueryRow(ctx, query,
		stored.ID,
		stored.FullName,
		stored.About,
		stored.Genres,
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert author: %w", err)
	}
	return stored, nil
}

// Update loads the row FOR UPDATE inside a transaction, applies mutate and
// writes the result back, so concurrent patches to one author serialize.
func (r *PostgresRepository) Update(ctx context.Context, id string, mutate func(*author.Author) error) (*author.Author, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update author: %w", err)
	}
	defer tx.Rollback(ctx)

	var a author.Author
	err = tx.QueryRow(ctx, `
        SELECT id, full_name, about, genres, created_at, updated_at
        FROM authors
        WHERE id = $1
        FOR UPDATE
    `, id).Scan(
		&a.ID,
		&a.FullName,
		&a.About,
		&a.Genres,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Author", id)
		}
		return nil, fmt.Errorf("lock author %s: %w", id, err)
	}

	if err := mutate(&a); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
        UPDATE authors
        SET full_name = $2, about = $3, genres = $4, updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `, id, a.FullName, a.About, a.Genres).Scan(&a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update author %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update author: %w", err)
	}

	r.invalidate(ctx, id)
	return &a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Author", id)
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *PostgresRepository) Query(ctx context.Context, f author.Filter) ([]author.Author, error) {
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
	if f.IDs != nil {
		where = append(where, "id = ANY("+arg(f.IDs)+")")
	}
	if f.FullName != "" {
		where = append(where, "full_name ILIKE '%' || "+arg(database.EscapeLike(f.FullName))+" || '%'")
	}
	if len(f.Genres) > 0 {
		where = append(where, "genres @> "+arg(f.Genres))
	}

	query := `SELECT id, full_name, about, genres, created_at, updated_at FROM authors`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var out []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.FullName,
			&a.About,
			&a.Genres,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) invalidate(ctx context.Context, id string) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id)
	}
}
