package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/shortener"
	"go.uber.org/zap"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
// Links never change once stored, so cached entries are never invalidated; they only expire.
type RedisCacheRepository struct {
	store     shortener.Repository
	client    *redis.Client
	prefix    string
	urlPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:     store,
		client:    client,
		prefix:    "cache:link:",
		urlPrefix: "cache:link_url:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Insert stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Insert(ctx context.Context, link *shortener.Link) error {
	if err := r.store.Insert(ctx, link); err != nil {
		return err
	}

	// Write-through: update cache after successful insert
	r.cacheLink(ctx, link)

	return nil
}

// GetByCode retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// GetByOriginalURL retrieves a link by its original url, checking cache first.
func (r *RedisCacheRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.Link, error) {
	code, err := r.client.Get(ctx, r.urlPrefix+HashURL(originalURL)).Result()
	if err == nil {
		if link, err := r.getFromCache(ctx, shortener.Code(code)); err == nil {
			return link, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("link cache read failed", zap.Error(err))
	}

	link, err := r.store.GetByOriginalURL(ctx, originalURL)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		r.logger.Warn("link cache read failed", zap.String("code", string(code)), zap.Error(err))

		return nil, err
	}

	return linkFromHash(fields)
}

// cacheLink is best effort: cache failures never fail the request.
func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.Code)
	urlKey := r.urlPrefix + HashURL(link.OriginalURL)

	pipe.HSet(ctx, key, map[string]interface{}{
		"code":         string(link.Code),
		"original_url": link.OriginalURL,
		"created_at":   link.CreatedAt.UnixNano(),
	})
	pipe.Set(ctx, urlKey, string(link.Code), r.ttl)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("link cache write failed", zap.String("code", string(link.Code)), zap.Error(err))
	}
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
