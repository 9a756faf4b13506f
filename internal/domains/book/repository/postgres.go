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

	"library-backend/internal/domains/book"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/types"
	"library-backend/pkg/cache"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

// PostgresRepository implements book.Repository on pgxpool with an optional
// read-through cache for by-id lookups.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) *PostgresRepository {
	return &PostgresRepository{pool: pool, cache: cache}
}

const bookColumns = `id, author_ids, title, about, genres, isbn13, isbn10, publisher, publish_date, created_at, updated_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		b  book.Book
		pd *time.Time
	)
	err := row.Scan(
		&b.ID,
		&b.AuthorIDs,
		&b.Title,
		&b.About,
		&b.Genres,
		&b.ISBN13,
		&b.ISBN10,
		&b.Publisher,
		&pd,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pd != nil {
		d := types.Date{Time: pd.UTC()}
		b.PublishDate = &d
	}
	return &b, nil
}

func publishDateArg(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*book.Book, error) {
	if r.cache != nil {
		var b book.Book
		if found, err := r.cache.Get(ctx, bookCacheKeyPrefix+id, &b); err == nil && found {
			return &b, nil
		}
	}

	b, err := scanBook(r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Book", id)
		}
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, bookCacheKeyPrefix+id, b, bookCacheTTL)
	}
	return b, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, b *book.Book) (*book.Book, error) {
	stored := b.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
        INSERT INTO books (id, author_ids, title, about, genres, isbn13, isbn10, publisher, publish_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at
    `,
		stored.ID,
		stored.AuthorIDs,
		stored.Title,
		stored.About,
		stored.Genres,
		stored.ISBN13,
		stored.ISBN10,
		stored.Publisher,
		publishDateArg(stored.PublishDate),
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return stored, nil
}

// Update mirrors the author store: lock the row, apply mutate, write back.
func (r *PostgresRepository) Update(ctx context.Context, id string, mutate func(*book.Book) error) (*book.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update book: %w", err)
	}
	defer tx.Rollback(ctx)

	b, err := scanBook(tx.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Book", id)
		}
		return nil, fmt.Errorf("lock book %s: %w", id, err)
	}

	if err := mutate(b); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
        UPDATE books
        SET author_ids = $2, title = $3, about = $4, genres = $5,
            isbn13 = $6, isbn10 = $7, publisher = $8, publish_date = $9,
            updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `,
		id,
		b.AuthorIDs,
		b.Title,
		b.About,
		b.Genres,
		b.ISBN13,
		b.ISBN10,
		b.Publisher,
		publishDateArg(b.PublishDate),
	).Scan(&b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update book: %w", err)
	}

	r.invalidate(ctx, id)
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Book", id)
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *PostgresRepository) Query(ctx context.Context, f book.Filter) ([]book.Book, error) {
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
	if f.AuthorID != "" {
		where = append(where, arg(f.AuthorID)+" = ANY(author_ids)")
	}
	if f.AuthorIDs != nil {
		// Overlap: books referencing at least one resolved author id.
		where = append(where, "author_ids && "+arg(f.AuthorIDs))
	}
	if f.Title != "" {
		where = append(where, "title ILIKE '%' || "+arg(database.EscapeLike(f.Title))+" || '%'")
	}
	if len(f.Genres) > 0 {
		where = append(where, "genres @> "+arg(f.Genres))
	}
	if f.ISBN13 != "" {
		where = append(where, "isbn13 = "+arg(f.ISBN13))
	}
	if f.ISBN10 != "" {
		where = append(where, "isbn10 = "+arg(f.ISBN10))
	}
	if f.Publisher != "" {
		where = append(where, "publisher ILIKE '%' || "+arg(database.EscapeLike(f.Publisher))+" || '%'")
	}
	// NULL publish_date fails both comparisons, so undated books never
	// match a dated window.
	if f.PublishDateStart != nil {
		where = append(where, "publish_date >= "+arg(f.PublishDateStart.Time))
	}
	if f.PublishDateEnd != nil {
		where = append(where, "publish_date < "+arg(f.PublishDateEnd.Time))
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var out []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) invalidate(ctx context.Context, id string) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id)
	}
}
