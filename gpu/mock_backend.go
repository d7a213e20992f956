package gpu

import (
	"unsafe"

	solver "github.com/cwbudde/algo-solver"
)

// MockBackend is a CPU-backed solver backend for development and tests. It
// satisfies the backend interfaces but executes every kernel on the CPU,
// synchronously; streams are ordering no-ops.
type MockBackend struct {
	device solver.DeviceInfo
}

// NewMockBackend returns a mock backend with a single fake device.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		device: solver.DeviceInfo{
			Name:       "MockGPU",
			Vendor:     "algosolver",
			Driver:     "mock",
			MemoryMB:   0,
			ComputeCap: "cpu",
		},
	}
}

// RegisterMockBackend registers the mock backend as the active backend.
func RegisterMockBackend() {
	solver.RegisterBackend(NewMockBackend())
}

func (b *MockBackend) Info() solver.BackendInfo {
	return solver.BackendInfo{
		Name:        "mock",
		Version:     "0.1",
		Description: "CPU-backed mock solver backend",
	}
}

func (b *MockBackend) Available() bool {
	return true
}

func (b *MockBackend) Devices() ([]solver.DeviceInfo, error) {
	return []solver.DeviceInfo{b.device}, nil
}

func (b *MockBackend) NewContext() (solver.Context, error) {
	return &mockContext{}, nil
}

func (b *MockBackend) NewStream() (solver.Stream, error) {
	return &mockStream{}, nil
}

func (b *MockBackend) Malloc(bytes int) (solver.Buffer, error) {
	if bytes < 1 {
		return nil, ErrAllocSize
	}
	mem, err := deviceAlloc(bytes)
	if err != nil {
		return nil, err
	}
	return &mockBuffer{mem: mem}, nil
}

func (b *MockBackend) CopyAsync(dst, src unsafe.Pointer, bytes int, stream solver.Stream) error {
	// The mock executes synchronously; stream ordering is trivially kept.
	copy(byteView(dst, bytes), byteView(src, bytes))
	return nil
}

type mockStream struct{}

func (s *mockStream) Synchronize() error { return nil }
func (s *mockStream) Close() error       { return nil }

// mockBuffer is device memory from the mmap arena.
type mockBuffer struct {
	mem []byte
}

func (b *mockBuffer) Ptr() unsafe.Pointer {
	if b.mem == nil {
		return nil
	}
	return unsafe.Pointer(&b.mem[0])
}

func (b *mockBuffer) Len() int {
	return len(b.mem)
}

func (b *mockBuffer) Upload(src any) error {
	if b.mem == nil {
		return ErrBufferClosed
	}
	switch s := src.(type) {
	case []byte:
		return b.copyIn(len(s)*1, unsafe.Pointer(unsafe.SliceData(s)))
	case []int32:
		return b.copyIn(len(s)*4, unsafe.Pointer(unsafe.SliceData(s)))
	case []float32:
		return b.copyIn(len(s)*4, unsafe.Pointer(unsafe.SliceData(s)))
	case []float64:
		return b.copyIn(len(s)*8, unsafe.Pointer(unsafe.SliceData(s)))
	case []complex64:
		return b.copyIn(len(s)*8, unsafe.Pointer(unsafe.SliceData(s)))
	case []complex128:
		return b.copyIn(len(s)*16, unsafe.Pointer(unsafe.SliceData(s)))
	default:
		return ErrHostSliceType
	}
}

func (b *mockBuffer) Download(dst any) error {
	if b.mem == nil {
		return ErrBufferClosed
	}
	switch d := dst.(type) {
	case []byte:
		return b.copyOut(len(d)*1, unsafe.Pointer(unsafe.SliceData(d)))
	case []int32:
		return b.copyOut(len(d)*4, unsafe.Pointer(unsafe.SliceData(d)))
	case []float32:
		return b.copyOut(len(d)*4, unsafe.Pointer(unsafe.SliceData(d)))
	case []float64:
		return b.copyOut(len(d)*8, unsafe.Pointer(unsafe.SliceData(d)))
	case []complex64:
		return b.copyOut(len(d)*8, unsafe.Pointer(unsafe.SliceData(d)))
	case []complex128:
		return b.copyOut(len(d)*16, unsafe.Pointer(unsafe.SliceData(d)))
	default:
		return ErrHostSliceType
	}
}

func (b *mockBuffer) copyIn(n int, data unsafe.Pointer) error {
	if n > len(b.mem) {
		return ErrHostSliceLen
	}
	copy(b.mem[:n], byteView(data, n))
	return nil
}

func (b *mockBuffer) copyOut(n int, data unsafe.Pointer) error {
	if n > len(b.mem) {
		return ErrHostSliceLen
	}
	copy(byteView(data, n), b.mem[:n])
	return nil
}

func (b *mockBuffer) Close() error {
	if b.mem == nil {
		return nil
	}
	mem := b.mem
	b.mem = nil
	return deviceFree(mem)
}
