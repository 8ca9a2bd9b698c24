package source

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when the document does not match the snapshot
// schema. The wrapping error names the offending path.
var ErrMalformed = errors.New("malformed snapshot")

func malformed(path, reason string) error {
	return fmt.Errorf("%s: %s: %w", path, reason, ErrMalformed)
}
