package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/shortener"
)

const (
	insertOK int64 = iota
	insertCodeTaken
	insertURLTaken
)

// insertScript stores a link hash and its url index entry only when neither exists.
// KEYS[1] = link hash key, KEYS[2] = url index key.
// ARGV = code, original url, created_at (unix nanos).
var insertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
	return 2
end
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 1
end
redis.call('HSET', KEYS[1], 'code', ARGV[1], 'original_url', ARGV[2], 'created_at', ARGV[3])
redis.call('SET', KEYS[2], ARGV[1])
return 0
`)

// RedisStore is a Redis implementation of shortener.Repository.
type RedisStore struct {
	client    *redis.Client
	prefix    string // "link:" for code -> link hash
	urlPrefix string // "link_url:" for sha256(url) -> code
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    "link:",
		urlPrefix: "link_url:",
	}
}

func (r *RedisStore) Insert(ctx context.Context, link *shortener.Link) error {
	keys := []string{
		r.prefix + string(link.Code),
		r.urlPrefix + HashURL(link.OriginalURL),
	}

	result, err := insertScript.Run(ctx, r.client, keys,
		string(link.Code),
		link.OriginalURL,
		link.CreatedAt.UnixNano(),
	).Int64()
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	switch result {
	case insertOK:
		return nil
	case insertCodeTaken:
		return shortener.ErrCodeTaken
	case insertURLTaken:
		return shortener.ErrURLTaken
	default:
		return fmt.Errorf("insert link: unexpected script result %d", result)
	}
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}

	return linkFromHash(fields)
}

func (r *RedisStore) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.Link, error) {
	code, err := r.client.Get(ctx, r.urlPrefix+HashURL(originalURL)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get link code: %w", err)
	}

	return r.GetByCode(ctx, shortener.Code(code))
}

// HashURL computes a SHA256 hash of the url, hex-encoded. It keeps index keys bounded in size.
func HashURL(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))

	return hex.EncodeToString(h[:])
}

// linkFromHash decodes a link stored as a Redis hash. An empty hash means the key does not exist.
func linkFromHash(fields map[string]string) (*shortener.Link, error) {
	if len(fields) == 0 {
		return nil, shortener.ErrNotFound
	}

	link := &shortener.Link{
		Code:        shortener.Code(fields["code"]),
		OriginalURL: fields["original_url"],
	}

	if ts, ok := fields["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			link.CreatedAt = time.Unix(0, nanos)
		}
	}

	return link, nil
}

var _ shortener.Repository = (*RedisStore)(nil)
