package algosolver

import "errors"

// Sentinel errors returned by planning and dispatch operations.
var (
	// ErrUnsupportedType is returned when an external element description
	// does not resolve to one of the supported element kinds.
	ErrUnsupportedType = errors.New("algosolver: unsupported element type")

	// ErrDescriptorSize is returned when an opaque descriptor blob does not
	// have the exact byte size of the expected descriptor record.
	ErrDescriptorSize = errors.New("algosolver: invalid descriptor size")

	// ErrInvalidShape is returned when a planner is given a non-positive
	// batch count or matrix dimension.
	ErrInvalidShape = errors.New("algosolver: invalid shape")

	// ErrBufferCount is returned when a dispatch call receives a buffer
	// list whose length does not match the operation's fixed layout.
	ErrBufferCount = errors.New("algosolver: wrong buffer count")

	// ErrNoBackend is returned when no backend is registered and none was
	// injected explicitly.
	ErrNoBackend = errors.New("algosolver: no backend registered")

	// ErrBackendUnavailable is returned when the backend is registered but
	// not usable on the current system (no device, driver missing).
	ErrBackendUnavailable = errors.New("algosolver: backend unavailable")

	// ErrPoolClosed is returned when borrowing from a handle pool that has
	// been shut down.
	ErrPoolClosed = errors.New("algosolver: handle pool closed")
)
