package gpu

import "errors"

var (
	// ErrDimensionTooLarge is returned when the batched Jacobi eigensolver
	// is asked for a matrix dimension beyond its supported maximum.
	ErrDimensionTooLarge = errors.New("algosolver/gpu: matrix dimension too large for batched jacobi")

	// ErrHostSliceType is returned when Upload or Download is given a host
	// slice of an unsupported element type.
	ErrHostSliceType = errors.New("algosolver/gpu: unsupported host slice type")

	// ErrHostSliceLen is returned when a host slice does not fit the
	// device buffer.
	ErrHostSliceLen = errors.New("algosolver/gpu: host slice length mismatch")

	// ErrBufferClosed is returned when a closed device buffer is used.
	ErrBufferClosed = errors.New("algosolver/gpu: buffer closed")

	// ErrAllocSize is returned for a non-positive allocation size.
	ErrAllocSize = errors.New("algosolver/gpu: invalid allocation size")
)
