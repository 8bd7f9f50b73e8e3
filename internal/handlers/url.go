package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl/internal/metrics"
	"github.com/serroba/shorturl/internal/middleware"
	"github.com/serroba/shorturl/internal/shortener"
	"github.com/serroba/shorturl/internal/validator"
	"go.uber.org/zap"
)

const (
	msgInvalidURL = "invalid url"
	msgSaveFailed = "Failed to save URL"
	msgNotFound   = "No URL found for the given short URL"
	msgDatabase   = "Database error"
)

// URLValidator normalizes and checks a submitted URL.
type URLValidator interface {
	Validate(ctx context.Context, input string) (string, error)
}

// LinkService creates and resolves links.
type LinkService interface {
	FindOrCreate(ctx context.Context, originalURL string) (*shortener.Link, error)
	Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	validator URLValidator
	links     LinkService
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(v URLValidator, links LinkService, m *metrics.Metrics, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		validator: v,
		links:     links,
		metrics:   m,
		logger:    logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	form, err := ParseShortenForm(req.RawBody)
	if err != nil || form.URL == "" {
		h.metrics.ValidationFailure("missing")

		return invalidURL(), nil
	}

	normalized, err := h.validator.Validate(ctx, form.URL)
	if err != nil {
		h.metrics.ValidationFailure(validationReason(err))
		h.logger.Debug("rejected url",
			zap.String("request_id", middleware.RequestMetaFromContext(ctx).RequestID),
			zap.Error(err),
		)

		return invalidURL(), nil
	}

	link, err := h.links.FindOrCreate(ctx, normalized)
	if err != nil {
		h.logger.Error("failed to save url",
			zap.String("request_id", middleware.RequestMetaFromContext(ctx).RequestID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(msgSaveFailed)
	}

	resp := &CreateShortURLResponse{Status: http.StatusOK}
	resp.Body.OriginalURL = link.OriginalURL
	resp.Body.ShortURL = string(link.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.links.Lookup(ctx, shortener.Code(req.ShortURL))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound(msgNotFound)
		}

		h.logger.Error("failed to get url",
			zap.String("code", req.ShortURL),
			zap.String("request_id", middleware.RequestMetaFromContext(ctx).RequestID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(msgDatabase)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: link.OriginalURL,
	}, nil
}

func invalidURL() *CreateShortURLResponse {
	resp := &CreateShortURLResponse{Status: http.StatusOK}
	resp.Body.Error = msgInvalidURL

	return resp
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, validator.ErrMalformed):
		return "malformed"
	case errors.Is(err, validator.ErrUnresolvableHost):
		return "unresolvable"
	default:
		return "other"
	}
}
