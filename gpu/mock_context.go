package gpu

import (
	"fmt"
	"unsafe"

	solver "github.com/cwbudde/algo-solver"
)

// MaxBatchedJacobiDim is the largest matrix dimension the batched Jacobi
// eigensolver accepts. The limit mirrors the constraint of the accelerator
// solver libraries this backend stands in for; it is a capability
// property, not a property of the dispatch layer.
const MaxBatchedJacobiDim = 32

// kernelSet holds the concrete numeric implementations for one element
// kind. Dispatch resolves a set once per call and never branches on the
// kind again.
type kernelSet struct {
	getrf func(m, n int, a unsafe.Pointer, ipiv []int32) int32
	syev  func(uplo solver.FillMode, n int, a, w unsafe.Pointer) int32
	gesvd func(jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int) int32
}

var kernels = map[solver.ElementKind]kernelSet{
	solver.KindF32:  {getrf: getrfF32, syev: syevF32, gesvd: gesvdF32},
	solver.KindF64:  {getrf: getrfF64, syev: syevF64, gesvd: gesvdF64},
	solver.KindC64:  {getrf: getrfC64, syev: heevC64, gesvd: gesvdC64},
	solver.KindC128: {getrf: getrfC128, syev: heevC128, gesvd: gesvdC128},
}

func kernelsFor(kind solver.ElementKind) (kernelSet, error) {
	ks, ok := kernels[kind]
	if !ok {
		return kernelSet{}, fmt.Errorf("algosolver/gpu: no kernels for %v", kind)
	}
	return ks, nil
}

// mockContext is the mock solver context. It carries no real device state;
// the stream is recorded only so rebinding can be observed in tests.
type mockContext struct {
	stream solver.Stream
}

func (c *mockContext) SetStream(s solver.Stream) error {
	c.stream = s
	return nil
}

func (c *mockContext) Destroy() error {
	return nil
}

func (c *mockContext) GetrfWorkspace(kind solver.ElementKind, m, n int) (int, error) {
	if _, err := kernelsFor(kind); err != nil {
		return 0, err
	}
	return m * n, nil
}

func (c *mockContext) Getrf(kind solver.ElementKind, m, n int, a, work, ipiv, status unsafe.Pointer) error {
	ks, err := kernelsFor(kind)
	if err != nil {
		return err
	}
	i32View(status, 1)[0] = ks.getrf(m, n, a, i32View(ipiv, min(m, n)))
	return nil
}

func (c *mockContext) SyevWorkspace(kind solver.ElementKind, uplo solver.FillMode, n int) (int, error) {
	if _, err := kernelsFor(kind); err != nil {
		return 0, err
	}
	return 1 + 6*n + 2*n*n, nil
}

func (c *mockContext) Syev(kind solver.ElementKind, uplo solver.FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer) error {
	ks, err := kernelsFor(kind)
	if err != nil {
		return err
	}
	i32View(status, 1)[0] = ks.syev(uplo, n, a, w)
	return nil
}

func (c *mockContext) NewJacobiParams() (solver.JacobiParams, error) {
	return &mockJacobiParams{tolerance: 1e-12, maxSweeps: 60}, nil
}

func (c *mockContext) SyevjWorkspace(kind solver.ElementKind, uplo solver.FillMode, n int, params solver.JacobiParams) (int, error) {
	if _, err := kernelsFor(kind); err != nil {
		return 0, err
	}
	return n*n + 3*n, nil
}

func (c *mockContext) SyevjBatchedWorkspace(kind solver.ElementKind, uplo solver.FillMode, n, batch int, params solver.JacobiParams) (int, error) {
	if _, err := kernelsFor(kind); err != nil {
		return 0, err
	}
	if n > MaxBatchedJacobiDim {
		return 0, fmt.Errorf("%w: n=%d, max %d", ErrDimensionTooLarge, n, MaxBatchedJacobiDim)
	}
	return (n*n + 3*n) * batch, nil
}

func (c *mockContext) Syevj(kind solver.ElementKind, uplo solver.FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer, params solver.JacobiParams) error {
	ks, err := kernelsFor(kind)
	if err != nil {
		return err
	}
	i32View(status, 1)[0] = ks.syev(uplo, n, a, w)
	return nil
}

// SyevjBatched is the natively batched Jacobi kernel: one invocation
// covers the whole batch. The mock iterates internally.
func (c *mockContext) SyevjBatched(kind solver.ElementKind, uplo solver.FillMode, n int, a, w, work unsafe.Pointer, lwork int, status unsafe.Pointer, params solver.JacobiParams, batch int) error {
	ks, err := kernelsFor(kind)
	if err != nil {
		return err
	}
	if n > MaxBatchedJacobiDim {
		return fmt.Errorf("%w: n=%d, max %d", ErrDimensionTooLarge, n, MaxBatchedJacobiDim)
	}
	statuses := i32View(status, batch)
	aStride := n * n * kind.Size()
	wStride := n * kind.Real().Size()
	for i := 0; i < batch; i++ {
		statuses[i] = ks.syev(uplo, n, unsafe.Add(a, i*aStride), unsafe.Add(w, i*wStride))
	}
	return nil
}

func (c *mockContext) GesvdWorkspace(kind solver.ElementKind, m, n int) (int, error) {
	if _, err := kernelsFor(kind); err != nil {
		return 0, err
	}
	k := min(m, n)
	return max(3*k+max(m, n), 5*k), nil
}

func (c *mockContext) Gesvd(kind solver.ElementKind, jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int, work unsafe.Pointer, lwork int, status unsafe.Pointer) error {
	ks, err := kernelsFor(kind)
	if err != nil {
		return err
	}
	i32View(status, 1)[0] = ks.gesvd(jobu, jobvt, m, n, a, s, u, vt, ldu, ldvt)
	return nil
}

// mockJacobiParams is planning-scoped Jacobi state.
type mockJacobiParams struct {
	tolerance float64
	maxSweeps int
	destroyed bool
}

func (p *mockJacobiParams) Destroy() error {
	p.destroyed = true
	return nil
}
