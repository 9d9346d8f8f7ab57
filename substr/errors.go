package substr

import "errors"

var (
	// ErrEmptyNeedle is returned by NewScanner for a zero-length needle,
	// which has no first or last byte to filter on.
	ErrEmptyNeedle = errors.New("substr: empty needle")

	// ErrKernelUnavailable is returned when a forced kernel is not compiled
	// into the binary or not supported by the CPU.
	ErrKernelUnavailable = errors.New("substr: kernel unavailable")

	// ErrUnknownKernel is returned by ParseKernel for unrecognized names.
	ErrUnknownKernel = errors.New("substr: unknown kernel")
)
