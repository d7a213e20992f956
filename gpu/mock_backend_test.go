package gpu

import (
	"errors"
	"testing"

	solver "github.com/cwbudde/algo-solver"
)

func TestMockBackendInfo(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	if !b.Available() {
		t.Fatal("mock backend should always be available")
	}
	if b.Info().Name != "mock" {
		t.Errorf("backend name: got %q, want %q", b.Info().Name, "mock")
	}
	devices, err := b.Devices()
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}
}

func TestRegisterMockBackend(t *testing.T) {
	RegisterMockBackend()
	defer solver.RegisterBackend(nil)

	s, err := solver.NewFromRegistered()
	if err != nil {
		t.Fatalf("NewFromRegistered: %v", err)
	}
	defer func() { _ = s.Close() }()

	if s.Backend().Info().Name != "mock" {
		t.Errorf("registered backend: got %q, want %q", s.Backend().Info().Name, "mock")
	}
}

func TestBufferRoundTrip(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	cases := []struct {
		name string
		src  any
		dst  any
	}{
		{"bytes", []byte{1, 2, 3, 4}, make([]byte, 4)},
		{"int32", []int32{-1, 2}, make([]int32, 2)},
		{"float32", []float32{1.5, -2.5}, make([]float32, 2)},
		{"float64", []float64{3.25}, make([]float64, 1)},
		{"complex64", []complex64{1 + 2i}, make([]complex64, 1)},
		{"complex128", []complex128{-1 - 1i}, make([]complex128, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := b.Malloc(64)
			if err != nil {
				t.Fatalf("Malloc: %v", err)
			}
			defer func() { _ = buf.Close() }()

			if err := buf.Upload(tc.src); err != nil {
				t.Fatalf("Upload: %v", err)
			}
			if err := buf.Download(tc.dst); err != nil {
				t.Fatalf("Download: %v", err)
			}
		})
	}
}

func TestBufferErrors(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	if _, err := b.Malloc(0); !errors.Is(err, ErrAllocSize) {
		t.Errorf("Malloc(0): got %v, want ErrAllocSize", err)
	}

	buf, err := b.Malloc(8)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}

	if err := buf.Upload("not a slice"); !errors.Is(err, ErrHostSliceType) {
		t.Errorf("Upload(string): got %v, want ErrHostSliceType", err)
	}
	if err := buf.Upload(make([]float64, 2)); !errors.Is(err, ErrHostSliceLen) {
		t.Errorf("oversized upload: got %v, want ErrHostSliceLen", err)
	}
	if err := buf.Download(make([]float64, 2)); !errors.Is(err, ErrHostSliceLen) {
		t.Errorf("oversized download: got %v, want ErrHostSliceLen", err)
	}

	if err := buf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buf.Upload([]byte{1}); !errors.Is(err, ErrBufferClosed) {
		t.Errorf("Upload after close: got %v, want ErrBufferClosed", err)
	}
	if err := buf.Download(make([]byte, 1)); !errors.Is(err, ErrBufferClosed) {
		t.Errorf("Download after close: got %v, want ErrBufferClosed", err)
	}
	if err := buf.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestCopyAsync(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	src, err := b.Malloc(32)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	defer func() { _ = src.Close() }()
	dst, err := b.Malloc(32)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	defer func() { _ = dst.Close() }()

	stream, err := b.NewStream()
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	defer func() { _ = stream.Close() }()

	want := []float64{1, 2, 3, 4}
	if err := src.Upload(want); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := b.CopyAsync(dst.Ptr(), src.Ptr(), 32, stream); err != nil {
		t.Fatalf("CopyAsync: %v", err)
	}
	if err := stream.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	got := make([]float64, 4)
	if err := dst.Download(got); err != nil {
		t.Fatalf("Download: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("copy mismatch at %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func TestContextStreamRebind(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	ctx, err := b.NewContext()
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer func() { _ = ctx.Destroy() }()

	s1, _ := b.NewStream()
	s2, _ := b.NewStream()
	if err := ctx.SetStream(s1); err != nil {
		t.Fatalf("SetStream: %v", err)
	}
	if err := ctx.SetStream(s2); err != nil {
		t.Fatalf("SetStream rebind: %v", err)
	}
	if ctx.(*mockContext).stream != s2 {
		t.Error("context not bound to the latest stream")
	}
}

func TestBatchedJacobiWorkspaceLimit(t *testing.T) {
	t.Parallel()
	b := NewMockBackend()

	ctx, err := b.NewContext()
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer func() { _ = ctx.Destroy() }()

	params, err := ctx.NewJacobiParams()
	if err != nil {
		t.Fatalf("NewJacobiParams: %v", err)
	}
	defer func() { _ = params.Destroy() }()

	if _, err := ctx.SyevjBatchedWorkspace(solver.KindF64, solver.FillLower, MaxBatchedJacobiDim, 4, params); err != nil {
		t.Errorf("n at limit: %v", err)
	}
	_, err = ctx.SyevjBatchedWorkspace(solver.KindF64, solver.FillLower, MaxBatchedJacobiDim+1, 4, params)
	if !errors.Is(err, ErrDimensionTooLarge) {
		t.Errorf("n over limit: got %v, want ErrDimensionTooLarge", err)
	}

	// The single-matrix query has no dimension cap.
	if _, err := ctx.SyevjWorkspace(solver.KindF64, solver.FillLower, MaxBatchedJacobiDim*4, params); err != nil {
		t.Errorf("single-matrix workspace: %v", err)
	}
}
