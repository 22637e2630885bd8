package linkcore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/linkcore/grouping"
	"github.com/hupe1980/linkcore/similarity"
)

// ErrInvalidArgument is returned when a caller-supplied argument fails
// validation in either similarity matching or grouping.
var ErrInvalidArgument = errors.New("linkcore: invalid argument")

// ErrLengthMismatch indicates a dimensionality mismatch between two
// signatures passed to the similarity kernel.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrLengthMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("linkcore: signature length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrLengthMismatch) Unwrap() error { return e.cause }

// translateError normalizes errors raised by the similarity and grouping
// subpackages into the facade's taxonomy so callers of Core do not need
// to import either subpackage just to classify an error.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var lm *similarity.ErrLengthMismatch
	if errors.As(err, &lm) {
		return &ErrLengthMismatch{Expected: lm.Expected, Actual: lm.Actual, cause: err}
	}

	if errors.Is(err, similarity.ErrInvalidKeySize) ||
		errors.Is(err, similarity.ErrInvalidK) ||
		errors.Is(err, similarity.ErrThresholdOutOfRange) ||
		errors.Is(err, grouping.ErrInvalidMergeThreshold) ||
		errors.Is(err, grouping.ErrSelfEdge) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
