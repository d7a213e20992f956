package gpu

import (
	"unsafe"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"

	solver "github.com/cwbudde/algo-solver"
)

// Real-kind kernels. Device buffers are column-major (leading dimension =
// row count), gonum wants row-major, so every kernel converts on the way
// in and out. The float32 kernels widen to float64, run the shared core
// and narrow the results; the mock trades precision bookkeeping for one
// code path.

func colToRow(col []float64, m, n int) []float64 {
	rm := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			rm[i*n+j] = col[i+j*m]
		}
	}
	return rm
}

func rowToCol(col []float64, rm []float64, m, n int) {
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			col[i+j*m] = rm[i*n+j]
		}
	}
}

// luCore factors col in place and writes 1-based pivot indices. A non-zero
// return marks the first exactly singular pivot, LAPACK-style.
func luCore(m, n int, col []float64, ipiv []int32) int32 {
	rm := colToRow(col, m, n)
	k := min(m, n)
	piv := make([]int, k)
	ok := lapack64.Getrf(blas64.General{Rows: m, Cols: n, Stride: n, Data: rm}, piv)
	rowToCol(col, rm, m, n)
	for i, p := range piv {
		ipiv[i] = int32(p) + 1
	}
	if ok {
		return 0
	}
	for i := 0; i < k; i++ {
		if rm[i*n+i] == 0 {
			return int32(i) + 1
		}
	}
	return int32(k)
}

// syevCore computes eigenvalues (ascending) and eigenvectors of the
// symmetric matrix whose uplo triangle is stored in col. Eigenvector j
// replaces column j of col.
func syevCore(uplo solver.FillMode, n int, col []float64, w []float64) int32 {
	full := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			var v float64
			if uplo == solver.FillLower {
				v = col[i+j*n]
			} else {
				v = col[j+i*n]
			}
			full[i*n+j] = v
			full[j*n+i] = v
		}
	}

	sym := blas64.Symmetric{N: n, Stride: n, Uplo: blas.Upper, Data: full}
	var query [1]float64
	lapack64.Syev(lapack.EVCompute, sym, w, query[:], -1)
	work := make([]float64, max(int(query[0]), 1))
	if !lapack64.Syev(lapack.EVCompute, sym, w, work, len(work)) {
		return int32(n)
	}
	rowToCol(col, full, n, n)
	return 0
}

func lapackSVDJob(job solver.SVDJob) lapack.SVDJob {
	switch job {
	case solver.SVDJobAll:
		return lapack.SVDAll
	case solver.SVDJobReduced:
		return lapack.SVDStore
	default:
		return lapack.SVDNone
	}
}

// gesvdCore computes the SVD of the m×n matrix in col (destroyed).
// Singular values land in sv descending; u and vt receive the vector
// factors in column-major layout when their job asks for them, and may be
// nil otherwise.
func gesvdCore(jobu, jobvt solver.SVDJob, m, n int, col, sv, u, vt []float64, ldu, ldvt int) int32 {
	k := min(m, n)
	rm := colToRow(col, m, n)

	ucols := m
	if jobu == solver.SVDJobReduced {
		ucols = k
	}
	vtrows := n
	if jobvt == solver.SVDJobReduced {
		vtrows = k
	}
	um := blas64.General{Rows: m, Cols: ucols, Stride: ucols, Data: make([]float64, m*ucols)}
	vtm := blas64.General{Rows: vtrows, Cols: n, Stride: n, Data: make([]float64, vtrows*n)}
	am := blas64.General{Rows: m, Cols: n, Stride: n, Data: rm}

	jU, jVT := lapackSVDJob(jobu), lapackSVDJob(jobvt)
	var query [1]float64
	lapack64.Gesvd(jU, jVT, am, um, vtm, sv, query[:], -1)
	work := make([]float64, max(int(query[0]), 1))
	ok := lapack64.Gesvd(jU, jVT, am, um, vtm, sv, work, len(work))
	rowToCol(col, rm, m, n)
	if !ok {
		return 1
	}
	if jobu != solver.SVDJobNone {
		for j := 0; j < ucols; j++ {
			for i := 0; i < m; i++ {
				u[i+j*ldu] = um.Data[i*ucols+j]
			}
		}
	}
	if jobvt != solver.SVDJobNone {
		for j := 0; j < n; j++ {
			for i := 0; i < vtrows; i++ {
				vt[i+j*ldvt] = vtm.Data[i*n+j]
			}
		}
	}
	return 0
}

// float64 entry points.

func getrfF64(m, n int, a unsafe.Pointer, ipiv []int32) int32 {
	return luCore(m, n, f64View(a, m*n), ipiv)
}

func syevF64(uplo solver.FillMode, n int, a, w unsafe.Pointer) int32 {
	return syevCore(uplo, n, f64View(a, n*n), f64View(w, n))
}

func gesvdF64(jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int) int32 {
	k := min(m, n)
	var uv, vtv []float64
	if jobu != solver.SVDJobNone {
		uv = f64View(u, uvElems(jobu, m, k, ldu))
	}
	if jobvt != solver.SVDJobNone {
		vtv = f64View(vt, ldvt*n)
	}
	return gesvdCore(jobu, jobvt, m, n, f64View(a, m*n), f64View(s, k), uv, vtv, ldu, ldvt)
}

func uvElems(job solver.SVDJob, m, k, ldu int) int {
	if job == solver.SVDJobReduced {
		return ldu * k
	}
	return ldu * m
}

// float32 entry points.

func getrfF32(m, n int, a unsafe.Pointer, ipiv []int32) int32 {
	av := f32View(a, m*n)
	tmp := make([]float64, m*n)
	f32ToF64(tmp, av)
	st := luCore(m, n, tmp, ipiv)
	f64ToF32(av, tmp)
	return st
}

func syevF32(uplo solver.FillMode, n int, a, w unsafe.Pointer) int32 {
	av, wv := f32View(a, n*n), f32View(w, n)
	tmpA := make([]float64, n*n)
	tmpW := make([]float64, n)
	f32ToF64(tmpA, av)
	st := syevCore(uplo, n, tmpA, tmpW)
	if st != 0 {
		return st
	}
	f64ToF32(av, tmpA)
	f64ToF32(wv, tmpW)
	return 0
}

func gesvdF32(jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int) int32 {
	k := min(m, n)
	av, sv := f32View(a, m*n), f32View(s, k)
	tmpA := make([]float64, m*n)
	tmpS := make([]float64, k)
	f32ToF64(tmpA, av)
	var tmpU, tmpVT []float64
	if jobu != solver.SVDJobNone {
		tmpU = make([]float64, uvElems(jobu, m, k, ldu))
	}
	if jobvt != solver.SVDJobNone {
		tmpVT = make([]float64, ldvt*n)
	}
	st := gesvdCore(jobu, jobvt, m, n, tmpA, tmpS, tmpU, tmpVT, ldu, ldvt)
	f64ToF32(av, tmpA)
	if st != 0 {
		return st
	}
	f64ToF32(sv, tmpS)
	if jobu != solver.SVDJobNone {
		f64ToF32(f32View(u, len(tmpU)), tmpU)
	}
	if jobvt != solver.SVDJobNone {
		f64ToF32(f32View(vt, len(tmpVT)), tmpVT)
	}
	return st
}
