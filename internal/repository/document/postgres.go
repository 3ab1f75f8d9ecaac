package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

// Collection names double as table names.
const (
	Products   = "products"
	Categories = "categories"
	Users      = "users"
	Orders     = "orders"
	Slides     = "slides"
	Banners    = "banners"
	Reviews    = "reviews"
	Settings   = "settings"
)

var knownTables = map[string]bool{
	Products: true, Categories: true, Users: true, Orders: true,
	Slides: true, Banners: true, Reviews: true, Settings: true,
}

// Collection stores T as JSONB documents keyed by id, listed in insertion order.
type Collection[T any] struct {
	pool   *pgxpool.Pool
	table  string
	logger *log.Logger
}

// NewPostgres returns a Collection over one of the known tables.
func NewPostgres[T any](pool *pgxpool.Pool, table string, logger *log.Logger) *Collection[T] {
	if !knownTables[table] {
		panic(fmt.Sprintf("document: unknown table %q", table))
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Collection[T]{pool: pool, table: table, logger: logger}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf(`SELECT doc FROM %s ORDER BY seq ASC`, c.table)
	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		c.logger.Printf("%s repo: list error=%v", c.table, err)
		return nil, err
	}
	out, err := ScanDocs[T](rows)
	if err != nil {
		c.logger.Printf("%s repo: list rows error=%v", c.table, err)
		return nil, err
	}
	c.logger.Printf("%s repo: list count=%d", c.table, len(out))
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	q := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	return ScanDoc[T](c.pool.QueryRow(ctx, q, id))
}

func (c *Collection[T]) Insert(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.pool.Exec(ctx, q, id, raw); err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		c.logger.Printf("%s repo: insert id=%s error=%v", c.table, id, err)
		return err
	}
	c.logger.Printf("%s repo: inserted id=%s", c.table, id)
	return nil
}

func (c *Collection[T]) Upsert(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`
INSERT INTO %s (id, doc) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
`, c.table)
	if _, err := c.pool.Exec(ctx, q, id, raw); err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		c.logger.Printf("%s repo: upsert id=%s error=%v", c.table, id, err)
		return err
	}
	c.logger.Printf("%s repo: upserted id=%s", c.table, id)
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	cmd, err := c.pool.Exec(ctx, q, id)
	if err != nil {
		c.logger.Printf("%s repo: delete id=%s error=%v", c.table, id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	c.logger.Printf("%s repo: deleted id=%s", c.table, id)
	return nil
}

// ScanDoc decodes a single JSONB document row.
func ScanDoc[T any](row pgx.Row) (*T, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &out, nil
}

// ScanDocs drains rows of JSONB documents.
func ScanDocs[T any](rows pgx.Rows) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsUniqueViolation reports a PostgreSQL unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
