package shortener_test

import (
	"context"
	"errors"
	"sync"

	"github.com/serroba/shorturl/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "http://example.com"

// mockRepository is a scripted Repository: each Insert call consumes the next entry of insertErrs.
type mockRepository struct {
	mu sync.Mutex

	insertErrs   []error
	getByURL     []*shortener.Link
	getByURLErrs []error
	getByCode    *shortener.Link
	getByCodeErr error

	inserted     []*shortener.Link
	getByURLCall int
	deadlines    []bool
}

func (m *mockRepository) Insert(ctx context.Context, link *shortener.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordDeadline(ctx)
	m.inserted = append(m.inserted, link)

	if len(m.insertErrs) == 0 {
		return nil
	}

	err := m.insertErrs[0]
	m.insertErrs = m.insertErrs[1:]

	return err
}

func (m *mockRepository) GetByOriginalURL(ctx context.Context, _ string) (*shortener.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordDeadline(ctx)

	i := m.getByURLCall
	m.getByURLCall++

	var (
		link *shortener.Link
		err  = shortener.ErrNotFound
	)

	if i < len(m.getByURL) {
		link = m.getByURL[i]
	}

	if i < len(m.getByURLErrs) {
		err = m.getByURLErrs[i]
	}

	if link != nil {
		return link, nil
	}

	return nil, err
}

func (m *mockRepository) GetByCode(ctx context.Context, _ shortener.Code) (*shortener.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordDeadline(ctx)

	if m.getByCodeErr != nil {
		return nil, m.getByCodeErr
	}

	if m.getByCode == nil {
		return nil, shortener.ErrNotFound
	}

	return m.getByCode, nil
}

func (m *mockRepository) recordDeadline(ctx context.Context) {
	_, ok := ctx.Deadline()
	m.deadlines = append(m.deadlines, ok)
}

// sequence returns a generator that yields codes in order, repeating the last one.
func sequence(codes ...string) shortener.CodeGenerator {
	var (
		mu sync.Mutex
		i  int
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}
