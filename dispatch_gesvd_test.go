package algosolver_test

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	solver "github.com/cwbudde/algo-solver"
)

type svdResult struct {
	out, s, u, vt solver.Buffer
	statuses      []int32
}

// svdRun plans and dispatches one batched SVD with the given job settings.
func svdRun(t *testing.T, h *harness, dt solver.DType, batch, m, n int, computeUV, fullMatrices bool, host any) svdResult {
	t.Helper()

	lwork, opaque, err := h.s.BuildGesvdDescriptor(dt, batch, m, n, computeUV, fullMatrices)
	if err != nil {
		t.Fatalf("BuildGesvdDescriptor: %v", err)
	}

	es := 16
	k := min(m, n)
	in := h.upload(batch*m*n*es, host)
	out := h.alloc(batch * m * n * es)
	sv := h.alloc(batch * k * 8)
	u := h.alloc(batch * m * m * es)
	vt := h.alloc(batch * n * n * es)
	status := h.alloc(batch * 4)
	work := h.alloc(max(lwork*es, 1))

	buffers := []unsafe.Pointer{in.Ptr(), out.Ptr(), sv.Ptr(), u.Ptr(), vt.Ptr(), status.Ptr(), work.Ptr()}
	if err := h.s.Gesvd(h.stream, buffers, opaque); err != nil {
		t.Fatalf("Gesvd: %v", err)
	}

	statuses := make([]int32, batch)
	h.download(status, statuses)
	return svdResult{out: out, s: sv, u: u, vt: vt, statuses: statuses}
}

func TestGesvdReducedReconstructs(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const m, n = 3, 2
	k := min(m, n)
	host := []float64{1, 2, 0, 0, 1, 3}

	res := svdRun(t, h, dtF64, 1, m, n, true, false, host)
	checkStatuses(t, res.statuses)

	sv := make([]float64, k)
	u := make([]float64, m*k)
	vt := make([]float64, k*n)
	h.download(res.s, sv)
	h.download(res.u, u)
	h.download(res.vt, vt)

	if sv[0] < sv[1] || sv[1] < 0 {
		t.Fatalf("singular values not descending and non-negative: %v", sv)
	}

	// A = U diag(s) VT, all column-major.
	us := make([]float64, m*k)
	for j := 0; j < k; j++ {
		for i := 0; i < m; i++ {
			us[i+j*m] = u[i+j*m] * sv[j]
		}
	}
	approxSlices(t, matMulCol(m, k, n, us, vt), host, 1e-10)
}

func TestGesvdSingularValuesKnown(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const batch, m, n = 2, 2, 2
	// diag(3, 4) and a rank-1 instance.
	host := []float64{
		3, 0, 0, 4,
		1, 2, 2, 4,
	}

	res := svdRun(t, h, dtF64, batch, m, n, true, false, host)
	checkStatuses(t, res.statuses)

	sv := make([]float64, batch*n)
	h.download(res.s, sv)
	approxSlices(t, sv[:2], []float64{4, 3}, 1e-10)
	// Rank-1 instance: s = [5, 0] since ||[1 2; 2 4]||_F = 5.
	approxSlices(t, sv[2:], []float64{5, 0}, 1e-10)
}

func TestGesvdFullOrthonormalU(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const m, n = 3, 2
	host := []float64{1, 2, 0, 0, 1, 3}

	res := svdRun(t, h, dtF64, 1, m, n, true, true, host)
	checkStatuses(t, res.statuses)

	u := make([]float64, m*m)
	h.download(res.u, u)
	for a := 0; a < m; a++ {
		for b := 0; b < m; b++ {
			var dot float64
			for i := 0; i < m; i++ {
				dot += u[i+a*m] * u[i+b*m]
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-10 {
				t.Errorf("U columns %d,%d: dot %g, want %g", a, b, dot, want)
			}
		}
	}
}

func TestGesvdJobNone(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const m, n = 2, 2
	host := []float64{3, 0, 0, 4}
	sentinel := []float64{-7, -7, -7, -7}

	lwork, opaque, err := h.s.BuildGesvdDescriptor(dtF64, 1, m, n, false, false)
	if err != nil {
		t.Fatalf("BuildGesvdDescriptor: %v", err)
	}

	in := h.upload(m*n*8, host)
	out := h.alloc(m * n * 8)
	sv := h.alloc(n * 8)
	u := h.upload(m*m*8, sentinel)
	vt := h.upload(n*n*8, sentinel)
	status := h.alloc(4)
	work := h.alloc(max(lwork*8, 1))

	buffers := []unsafe.Pointer{in.Ptr(), out.Ptr(), sv.Ptr(), u.Ptr(), vt.Ptr(), status.Ptr(), work.Ptr()}
	if err := h.s.Gesvd(h.stream, buffers, opaque); err != nil {
		t.Fatalf("Gesvd: %v", err)
	}

	statuses := make([]int32, 1)
	h.download(status, statuses)
	checkStatuses(t, statuses)

	values := make([]float64, n)
	h.download(sv, values)
	approxSlices(t, values, []float64{4, 3}, 1e-10)

	// Without vectors requested the u and vt buffers stay untouched.
	got := make([]float64, 4)
	h.download(u, got)
	approxSlices(t, got, sentinel, 0)
	h.download(vt, got)
	approxSlices(t, got, sentinel, 0)
}

func TestGesvdComplex(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const m, n = 2, 2
	// diag(3i, 4): singular values 4 and 3.
	host := []complex128{3i, 0, 0, 4}

	res := svdRun(t, h, dtC128, 1, m, n, true, false, host)
	checkStatuses(t, res.statuses)

	sv := make([]float64, n)
	h.download(res.s, sv)
	approxSlices(t, sv, []float64{4, 3}, 1e-10)

	u := make([]complex128, m*n)
	vt := make([]complex128, n*n)
	h.download(res.u, u)
	h.download(res.vt, vt)

	us := make([]complex128, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			us[i+j*m] = u[i+j*m] * complex(sv[j], 0)
		}
	}
	approxSlicesC(t, matMulColC(m, n, n, us, vt), host, 1e-10)
}

func TestGesvdBatchIndependence(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	const m, n = 2, 2
	single := []float64{3, 0, 0, 4}

	resSingle := svdRun(t, h, dtF64, 1, m, n, true, false, single)
	checkStatuses(t, resSingle.statuses)
	svSingle := make([]float64, n)
	h.download(resSingle.s, svSingle)

	// The same instance inside a batch of three gives identical results.
	batchHost := append(append([]float64{9, 1, 1, 2}, single...), 0, 0, 0, 0)
	resBatch := svdRun(t, h, dtF64, 3, m, n, true, false, batchHost)
	svBatch := make([]float64, 3*n)
	h.download(resBatch.s, svBatch)
	approxSlices(t, svBatch[n:2*n], svSingle, 1e-12)
}

func TestGesvdBufferCount(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, opaque, err := h.s.BuildGesvdDescriptor(dtF64, 1, 2, 2, true, false)
	if err != nil {
		t.Fatalf("BuildGesvdDescriptor: %v", err)
	}
	err = h.s.Gesvd(h.stream, make([]unsafe.Pointer, 5), opaque)
	if !errors.Is(err, solver.ErrBufferCount) {
		t.Errorf("got %v, want ErrBufferCount", err)
	}
}
