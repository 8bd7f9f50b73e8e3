package handlers_test

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/serroba/shorturl/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "http://example.com"

// fakeResolver resolves every host except those under .invalid.
type fakeResolver struct{}

func (fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if strings.HasSuffix(host, ".invalid") {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	return []string{"192.0.2.10"}, nil
}

// failingRepository is a Repository whose every call fails.
type failingRepository struct{}

func (failingRepository) GetByCode(_ context.Context, _ shortener.Code) (*shortener.Link, error) {
	return nil, errMock
}

func (failingRepository) GetByOriginalURL(_ context.Context, _ string) (*shortener.Link, error) {
	return nil, errMock
}

func (failingRepository) Insert(_ context.Context, _ *shortener.Link) error {
	return errMock
}
