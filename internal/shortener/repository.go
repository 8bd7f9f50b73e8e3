package shortener

import "context"

// Repository defines the storage operations a link backend must provide.
type Repository interface {
	GetByCode(ctx context.Context, code Code) (*Link, error)
	GetByOriginalURL(ctx context.Context, originalURL string) (*Link, error)

	// Insert stores a new link atomically. It returns ErrCodeTaken or ErrURLTaken
	// when the code or the original URL is already present, and must not store
	// anything in that case.
	Insert(ctx context.Context, link *Link) error
}
