// Package validator normalizes submitted URLs and checks that their host resolves.
package validator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

var (
	// ErrMalformed is returned when the input cannot be parsed as an absolute URL with a host.
	ErrMalformed = errors.New("malformed url")

	// ErrUnresolvableHost is returned when the URL host does not resolve in DNS.
	ErrUnresolvableHost = errors.New("unresolvable host")
)

// Resolver resolves host names. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Validator validates candidate URLs.
type Validator struct {
	resolver Resolver
	timeout  time.Duration
}

// New creates a validator that resolves hosts with resolver, waiting at most timeout.
func New(resolver Resolver, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Validator{
		resolver: resolver,
		timeout:  timeout,
	}
}

// Validate returns input with an http:// scheme added when it has neither
// http:// nor https://. The returned string is otherwise left as submitted.
func (v *Validator) Validate(ctx context.Context, input string) (string, error) {
	candidate := WithScheme(strings.TrimSpace(input))

	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrMalformed)
	}

	if port := u.Port(); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return "", fmt.Errorf("%w: port %s out of range", ErrMalformed, port)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	addrs, err := v.resolver.LookupHost(ctx, host)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnresolvableHost, host, err)
	}

	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: %s: no addresses", ErrUnresolvableHost, host)
	}

	return candidate, nil
}

// WithScheme prepends http:// unless s already starts with http:// or https://, ignoring case.
func WithScheme(s string) string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}

	return "http://" + s
}
