package errs

import (
	"errors"
	"fmt"
)

// Capture runs errFunc and joins its error, if any, onto *errPtr so that a failing
// Close in a defer is never lost behind the function's own return value.
func Capture(errPtr *error, errFunc func() error, msg string) {
	if err := errFunc(); err != nil {
		*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
	}
}

// CaptureGeneric is Capture for cleanup functions taking one argument, such as os.RemoveAll.
func CaptureGeneric[K any](errPtr *error, errFunc func(value K) error, value K, msg string) {
	if err := errFunc(value); err != nil {
		*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
	}
}
