package algosolver_test

import (
	"math"
	"math/cmplx"
	"testing"

	solver "github.com/cwbudde/algo-solver"
	"github.com/cwbudde/algo-solver/gpu"
)

var (
	dtF32  = solver.DType{Kind: 'f', ItemSize: 4}
	dtF64  = solver.DType{Kind: 'f', ItemSize: 8}
	dtC64  = solver.DType{Kind: 'c', ItemSize: 8}
	dtC128 = solver.DType{Kind: 'c', ItemSize: 16}
)

// harness wires a Solver over the mock backend and tracks device buffers
// for cleanup.
type harness struct {
	t       *testing.T
	s       *solver.Solver
	backend solver.Backend
	stream  solver.Stream

	bufs []solver.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := gpu.NewMockBackend()
	s, err := solver.New(backend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stream, err := backend.NewStream()
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	h := &harness{t: t, s: s, backend: backend, stream: stream}
	t.Cleanup(func() {
		for _, b := range h.bufs {
			_ = b.Close()
		}
		_ = stream.Close()
		_ = s.Close()
	})
	return h
}

func (h *harness) alloc(bytes int) solver.Buffer {
	h.t.Helper()
	b, err := h.backend.Malloc(bytes)
	if err != nil {
		h.t.Fatalf("Malloc(%d): %v", bytes, err)
	}
	h.bufs = append(h.bufs, b)
	return b
}

func (h *harness) upload(bytes int, src any) solver.Buffer {
	h.t.Helper()
	b := h.alloc(bytes)
	if err := b.Upload(src); err != nil {
		h.t.Fatalf("Upload: %v", err)
	}
	return b
}

func (h *harness) download(b solver.Buffer, dst any) {
	h.t.Helper()
	if err := b.Download(dst); err != nil {
		h.t.Fatalf("Download: %v", err)
	}
}

func checkStatuses(t *testing.T, statuses []int32) {
	t.Helper()
	for i, st := range statuses {
		if st != 0 {
			t.Errorf("instance %d: status %d, want 0", i, st)
		}
	}
}

func approxSlices(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("index %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

// matMulCol multiplies the col-major m×k matrix a by the col-major k×n
// matrix b.
func matMulCol(m, k, n int, a, b []float64) []float64 {
	out := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for l := 0; l < k; l++ {
			f := b[l+j*k]
			if f == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				out[i+j*m] += a[i+l*m] * f
			}
		}
	}
	return out
}

func matMulColC(m, k, n int, a, b []complex128) []complex128 {
	out := make([]complex128, m*n)
	for j := 0; j < n; j++ {
		for l := 0; l < k; l++ {
			f := b[l+j*k]
			if f == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				out[i+j*m] += a[i+l*m] * f
			}
		}
	}
	return out
}

func approxSlicesC(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Errorf("index %d: got %g, want %g", i, got[i], want[i])
		}
	}
}
