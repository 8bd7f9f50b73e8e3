package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shorturl/internal/metrics"
	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 5
	DefaultTimeout     = 5 * time.Second
)

// Service creates and resolves links on top of a Repository.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
	timeout      time.Duration
	metrics      *metrics.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many codes are tried before giving up on a collision streak.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTimeout bounds every store call made by a single operation.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a link service.
func NewService(store Repository, generator CodeGenerator, opts ...Option) *Service {
	s := &Service{
		store:        store,
		generateCode: generator,
		maxAttempts:  DefaultMaxAttempts,
		timeout:      DefaultTimeout,
		logger:       zap.NewNop(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FindOrCreate returns the link stored for originalURL, creating it on first submission.
//
// Concurrent calls for the same URL race on the store's uniqueness constraint;
// the losers observe ErrURLTaken and return the winner's link.
func (s *Service) FindOrCreate(ctx context.Context, originalURL string) (*Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.store.GetByOriginalURL(ctx, originalURL)
	if err == nil {
		s.metrics.LinkReused()

		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, s.unavailable("get_by_url", err)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		link := &Link{
			Code:        Code(s.generateCode()),
			OriginalURL: originalURL,
			CreatedAt:   s.now(),
		}

		err = s.store.Insert(ctx, link)

		switch {
		case err == nil:
			s.metrics.LinkCreated()
			s.logger.Debug("link created",
				zap.String("code", string(link.Code)),
				zap.Int("attempt", attempt),
			)

			return link, nil
		case errors.Is(err, ErrCodeTaken):
			s.metrics.CodeCollision()
			s.logger.Debug("short code collision",
				zap.String("code", string(link.Code)),
				zap.Int("attempt", attempt),
			)
		case errors.Is(err, ErrURLTaken):
			s.metrics.CreateConflict()

			return s.reread(ctx, originalURL)
		default:
			return nil, s.unavailable("insert", err)
		}
	}

	s.logger.Warn("short code generation exhausted", zap.Int("attempts", s.maxAttempts))

	return nil, ErrGenerationExhausted
}

// reread loads the link a concurrent request created first.
func (s *Service) reread(ctx context.Context, originalURL string) (*Link, error) {
	link, err := s.store.GetByOriginalURL(ctx, originalURL)
	if err != nil {
		return nil, s.unavailable("get_by_url", err)
	}

	s.metrics.LinkReused()

	return link, nil
}

// Lookup returns the link for code, or ErrNotFound.
func (s *Service) Lookup(ctx context.Context, code Code) (*Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	link, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, s.unavailable("get_by_code", err)
	}

	return link, nil
}

func (s *Service) unavailable(op string, err error) error {
	s.metrics.StoreError(op)

	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
