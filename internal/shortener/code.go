package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// CodeGenerator generates short codes.
type CodeGenerator func() string

// NewNanoIDGenerator returns a generator of URL-safe codes with the given length.
func NewNanoIDGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, fmt.Errorf("creating code generator: %w", err)
	}

	return gen, nil
}
