//go:build cuda

package gpu

import (
	"unsafe"

	solver "github.com/cwbudde/algo-solver"
)

// CUDABackend is a stub backend enabled with the "cuda" build tag.
// It does not provide a working implementation yet.
type CUDABackend struct{}

func (b *CUDABackend) Info() solver.BackendInfo {
	return solver.BackendInfo{
		Name:        "cuda",
		Version:     "stub",
		Description: "CUDA backend stub (no implementation)",
	}
}

func (b *CUDABackend) Available() bool {
	return false
}

func (b *CUDABackend) Devices() ([]solver.DeviceInfo, error) {
	return nil, solver.ErrBackendUnavailable
}

func (b *CUDABackend) NewContext() (solver.Context, error) {
	return nil, solver.ErrBackendUnavailable
}

func (b *CUDABackend) NewStream() (solver.Stream, error) {
	return nil, solver.ErrBackendUnavailable
}

func (b *CUDABackend) Malloc(_ int) (solver.Buffer, error) {
	return nil, solver.ErrBackendUnavailable
}

func (b *CUDABackend) CopyAsync(_, _ unsafe.Pointer, _ int, _ solver.Stream) error {
	return solver.ErrBackendUnavailable
}

// RegisterCUDABackend registers the CUDA backend stub.
func RegisterCUDABackend() {
	solver.RegisterBackend(&CUDABackend{})
}
