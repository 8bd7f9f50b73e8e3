package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shorturl/internal/shortener"
)

const (
	uniqueViolation = "23505"

	constraintCode = "links_pkey"
	constraintURL  = "links_url_hash_key"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.Link) error {
	query := `
		INSERT INTO links (short_code, original_url, url_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		string(link.Code),
		link.OriginalURL,
		HashURL(link.OriginalURL),
		link.CreatedAt,
	)
	if err != nil {
		return insertError(err)
	}

	return nil
}

// insertError maps unique violations to the repository conflict errors.
func insertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return fmt.Errorf("insert link: %w", err)
	}

	switch pgErr.ConstraintName {
	case constraintURL:
		return shortener.ErrURLTaken
	case constraintCode:
		return shortener.ErrCodeTaken
	default:
		return fmt.Errorf("insert link: unexpected constraint %q: %w", pgErr.ConstraintName, err)
	}
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM links
		WHERE short_code = $1
	`

	return p.getOne(ctx, query, string(code))
}

// GetByOriginalURL looks the url up by its digest; the url itself is not indexed.
func (p *PostgresStore) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.Link, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM links
		WHERE url_hash = $1
	`

	return p.getOne(ctx, query, HashURL(originalURL))
}

func (p *PostgresStore) getOne(ctx context.Context, query string, arg string) (*shortener.Link, error) {
	var link shortener.Link

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&link.Code,
		&link.OriginalURL,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get link: %w", err)
	}

	return &link, nil
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortener.Repository = (*PostgresStore)(nil)
