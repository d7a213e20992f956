package algosolver

import (
	"sync"
	"unsafe"
)

// Backend is implemented by accelerator backends (CUDA, a CPU mock, etc.).
// It is responsible for device discovery, device memory, stream creation
// and solver context creation. The numerical kernels themselves are a
// black box behind Context.
type Backend interface {
	Info() BackendInfo
	Available() bool
	Devices() ([]DeviceInfo, error)

	// NewContext creates a solver context. Contexts are expensive;
	// callers should go through a HandlePool rather than creating one
	// per operation.
	NewContext() (Context, error)

	// NewStream creates an execution stream/queue.
	NewStream() (Stream, error)

	// Malloc allocates a device buffer of the given byte size.
	Malloc(bytes int) (Buffer, error)

	// CopyAsync enqueues a device-to-device copy on the given stream.
	// The copy is ordered relative to other work on the same stream but
	// asynchronous relative to the calling goroutine.
	CopyAsync(dst, src unsafe.Pointer, bytes int, stream Stream) error
}

// Context is an accelerator solver context: the expensive execution state
// an operation must hold to issue kernels. A context is owned by at most
// one in-flight operation at a time.
//
// Workspace queries are shape-only: they take null data pointers and never
// touch device memory. Kernel calls take raw device addresses for their
// operands and write one int32 status code per instance into the status
// address; a non-zero status reports a per-instance numerical failure
// (singular pivot, non-convergence) and is not an error. Eigendecomposition
// kernels always compute eigenvectors. Pivot indices and status codes use
// the LAPACK conventions (1-based pivots, info-style statuses).
type Context interface {
	// SetStream rebinds the context to an execution stream. Rebinding is
	// cheap relative to context creation.
	SetStream(s Stream) error

	GetrfWorkspace(kind ElementKind, m, n int) (int, error)
	Getrf(kind ElementKind, m, n int, a, work, ipiv, status unsafe.Pointer) error

	SyevWorkspace(kind ElementKind, uplo FillMode, n int) (int, error)
	Syev(kind ElementKind, uplo FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer) error

	// NewJacobiParams allocates algorithm-parameter state for the Jacobi
	// eigensolver. The state is scoped to a single planning or dispatch
	// call and must be destroyed by the caller.
	NewJacobiParams() (JacobiParams, error)

	SyevjWorkspace(kind ElementKind, uplo FillMode, n int, params JacobiParams) (int, error)
	SyevjBatchedWorkspace(kind ElementKind, uplo FillMode, n, batch int, params JacobiParams) (int, error)
	Syevj(kind ElementKind, uplo FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer, params JacobiParams) error
	SyevjBatched(kind ElementKind, uplo FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer, params JacobiParams, batch int) error

	GesvdWorkspace(kind ElementKind, m, n int) (int, error)
	Gesvd(kind ElementKind, jobu, jobvt SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int, work unsafe.Pointer, lwork int, status unsafe.Pointer) error

	Destroy() error
}

// JacobiParams is opaque Jacobi eigensolver parameter state.
type JacobiParams interface {
	Destroy() error
}

// Buffer is a device buffer.
type Buffer interface {
	// Ptr returns the raw device address of the buffer.
	Ptr() unsafe.Pointer
	// Len returns the buffer size in bytes.
	Len() int
	// Upload copies from a host slice to the device.
	Upload(src any) error
	// Download copies from the device to a host slice.
	Download(dst any) error
	Close() error
}

// Stream represents an execution queue/stream. Work enqueued on one stream
// executes in enqueue order; streams are independent of each other.
type Stream interface {
	Synchronize() error
	Close() error
}

// DeviceInfo describes an accelerator device.
type DeviceInfo struct {
	Name       string
	Vendor     string
	Driver     string
	MemoryMB   int
	ComputeCap string
}

// BackendInfo describes a backend implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// RegisterBackend registers a backend for discovery by NewFromRegistered.
// Passing nil clears the backend.
func RegisterBackend(b Backend) {
	backendMu.Lock()
	backend = b
	backendMu.Unlock()
}

// CurrentBackendInfo reports the currently registered backend, if any.
func CurrentBackendInfo() (BackendInfo, bool) {
	b := getBackend()
	if b == nil {
		return BackendInfo{}, false
	}
	return b.Info(), true
}

func getBackend() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}
