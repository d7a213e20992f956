package gpu

import (
	"math"
	"math/cmplx"
	"unsafe"

	solver "github.com/cwbudde/algo-solver"
)

// Complex-kind kernels. gonum's lapack64 wrapper covers the real kinds
// only, so the complex paths are implemented here: unblocked LU with
// partial pivoting, a cyclic Hermitian Jacobi eigensolver, and a
// one-sided Jacobi SVD. The complex64 kernels widen to complex128 around
// the shared cores, like the float32 kernels do.

const (
	jacobiTol       = 1e-13
	jacobiMaxSweeps = 60
	rankTol         = 1e-12
)

// luComplexCore factors the m×n column-major matrix in place with partial
// pivoting. Pivot indices are 1-based; a non-zero return marks the first
// pivot column with no usable pivot.
func luComplexCore(m, n int, a []complex128, ipiv []int32) int32 {
	var status int32
	k := min(m, n)
	for col := 0; col < k; col++ {
		p := col
		pmax := cmplx.Abs(a[col+col*m])
		for i := col + 1; i < m; i++ {
			if v := cmplx.Abs(a[i+col*m]); v > pmax {
				p, pmax = i, v
			}
		}
		ipiv[col] = int32(p) + 1
		if pmax == 0 {
			if status == 0 {
				status = int32(col) + 1
			}
			continue
		}
		if p != col {
			for j := 0; j < n; j++ {
				a[col+j*m], a[p+j*m] = a[p+j*m], a[col+j*m]
			}
		}
		piv := a[col+col*m]
		for i := col + 1; i < m; i++ {
			a[i+col*m] /= piv
		}
		for j := col + 1; j < n; j++ {
			f := a[col+j*m]
			if f == 0 {
				continue
			}
			for i := col + 1; i < m; i++ {
				a[i+j*m] -= a[i+col*m] * f
			}
		}
	}
	return status
}

// jacobiRotation builds the unitary 2×2 rotation that annihilates the
// off-diagonal element g of the Hermitian block [[app, g], [conj(g), aqq]].
// It returns c (real) and the two complex sine factors applied to the
// p/q columns.
func jacobiRotation(app, aqq float64, g complex128) (cs, se, seConj complex128) {
	absg := cmplx.Abs(g)
	e := g / complex(absg, 0)
	tau := (aqq - app) / (2 * absg)
	t := math.Copysign(1, tau) / (math.Abs(tau) + math.Sqrt(1+tau*tau))
	c := 1 / math.Sqrt(1+t*t)
	s := t * c
	cs = complex(c, 0)
	se = complex(s, 0) * e
	seConj = complex(s, 0) * cmplx.Conj(e)
	return cs, se, seConj
}

// heevCore computes eigenvalues (ascending) and eigenvectors of the
// Hermitian matrix whose uplo triangle is stored column-major in a.
// Eigenvector j replaces column j of a. A non-zero return reports
// non-convergence.
func heevCore(uplo solver.FillMode, n int, a []complex128, w []float64) int32 {
	h := make([]complex128, n*n)
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			var val complex128
			if uplo == solver.FillLower {
				val = a[i+j*n]
			} else {
				val = cmplx.Conj(a[j+i*n])
			}
			if i == j {
				val = complex(real(val), 0)
			}
			h[i+j*n] = val
			h[j+i*n] = cmplx.Conj(val)
		}
	}

	v := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		v[i+i*n] = 1
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		rotated := false
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				g := h[p+q*n]
				app := real(h[p+p*n])
				aqq := real(h[q+q*n])
				if cmplx.Abs(g) <= jacobiTol*(math.Abs(app)+math.Abs(aqq)) {
					continue
				}
				rotated = true
				cs, se, seConj := jacobiRotation(app, aqq, g)

				// h = J^H (h J): columns first, then rows.
				for i := 0; i < n; i++ {
					hp, hq := h[i+p*n], h[i+q*n]
					h[i+p*n] = cs*hp - seConj*hq
					h[i+q*n] = se*hp + cs*hq
				}
				for i := 0; i < n; i++ {
					hp, hq := h[p+i*n], h[q+i*n]
					h[p+i*n] = cs*hp - se*hq
					h[q+i*n] = seConj*hp + cs*hq
				}
				h[p+q*n] = 0
				h[q+p*n] = 0
				h[p+p*n] = complex(real(h[p+p*n]), 0)
				h[q+q*n] = complex(real(h[q+q*n]), 0)

				for i := 0; i < n; i++ {
					vp, vq := v[i+p*n], v[i+q*n]
					v[i+p*n] = cs*vp - seConj*vq
					v[i+q*n] = se*vp + cs*vq
				}
			}
		}
		if !rotated {
			break
		}
	}

	for p := 0; p < n-1; p++ {
		for q := p + 1; q < n; q++ {
			app := real(h[p+p*n])
			aqq := real(h[q+q*n])
			if cmplx.Abs(h[p+q*n]) > jacobiTol*(math.Abs(app)+math.Abs(aqq)) {
				return 1
			}
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	diag := func(i int) float64 { return real(h[perm[i]+perm[i]*n]) }
	for i := 1; i < n; i++ {
		for j := i; j > 0 && diag(j) < diag(j-1); j-- {
			perm[j], perm[j-1] = perm[j-1], perm[j]
		}
	}
	for j := 0; j < n; j++ {
		w[j] = real(h[perm[j]+perm[j]*n])
		for i := 0; i < n; i++ {
			a[i+j*n] = v[i+perm[j]*n]
		}
	}
	return 0
}

// gesvdComplexCore computes the SVD of the m×n column-major matrix in a
// by one-sided Jacobi: columns of a working copy are rotated pairwise
// until mutually orthogonal; their norms are the singular values
// (descending), their normalized directions the columns of U, and the
// accumulated rotations the columns of V.
func gesvdComplexCore(jobu, jobvt solver.SVDJob, m, n int, a []complex128, sv []float64, u, vt []complex128, ldu, ldvt int) int32 {
	k := min(m, n)
	wm := make([]complex128, m*n)
	copy(wm, a[:m*n])

	var v []complex128
	if jobvt != solver.SVDJobNone {
		v = make([]complex128, n*n)
		for i := 0; i < n; i++ {
			v[i+i*n] = 1
		}
	}

	gram := func(p, q int) (app, aqq float64, apq complex128) {
		for i := 0; i < m; i++ {
			wp, wq := wm[i+p*m], wm[i+q*m]
			app += real(wp)*real(wp) + imag(wp)*imag(wp)
			aqq += real(wq)*real(wq) + imag(wq)*imag(wq)
			apq += cmplx.Conj(wp) * wq
		}
		return app, aqq, apq
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		rotated := false
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				app, aqq, apq := gram(p, q)
				if cmplx.Abs(apq) <= jacobiTol*math.Sqrt(app*aqq) {
					continue
				}
				rotated = true
				cs, se, seConj := jacobiRotation(app, aqq, apq)
				for i := 0; i < m; i++ {
					wp, wq := wm[i+p*m], wm[i+q*m]
					wm[i+p*m] = cs*wp - seConj*wq
					wm[i+q*m] = se*wp + cs*wq
				}
				if v != nil {
					for i := 0; i < n; i++ {
						vp, vq := v[i+p*n], v[i+q*n]
						v[i+p*n] = cs*vp - seConj*vq
						v[i+q*n] = se*vp + cs*vq
					}
				}
			}
		}
		if !rotated {
			break
		}
	}

	var status int32
	for p := 0; p < n-1; p++ {
		for q := p + 1; q < n; q++ {
			app, aqq, apq := gram(p, q)
			if cmplx.Abs(apq) > jacobiTol*math.Sqrt(app*aqq) {
				status++
			}
		}
	}

	norms := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < m; i++ {
			wj := wm[i+j*m]
			sum += real(wj)*real(wj) + imag(wj)*imag(wj)
		}
		norms[j] = math.Sqrt(sum)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && norms[perm[j]] > norms[perm[j-1]]; j-- {
			perm[j], perm[j-1] = perm[j-1], perm[j]
		}
	}
	for j := 0; j < k; j++ {
		sv[j] = norms[perm[j]]
	}

	if jobu != solver.SVDJobNone {
		ucols := m
		if jobu == solver.SVDJobReduced {
			ucols = k
		}
		smax := norms[perm[0]]
		filled := 0
		for j := 0; j < ucols && j < n; j++ {
			s := norms[perm[j]]
			if s <= rankTol*smax || smax == 0 {
				break
			}
			inv := complex(1/s, 0)
			for i := 0; i < m; i++ {
				u[i+j*ldu] = wm[i+perm[j]*m] * inv
			}
			filled = j + 1
		}
		completeBasis(u, m, ldu, filled, ucols)
	}

	if jobvt != solver.SVDJobNone {
		vtrows := n
		if jobvt == solver.SVDJobReduced {
			vtrows = k
		}
		for i := 0; i < vtrows; i++ {
			for j := 0; j < n; j++ {
				vt[i+j*ldvt] = cmplx.Conj(v[j+perm[i]*n])
			}
		}
	}
	return status
}

// completeBasis extends the first filled orthonormal columns of the
// m×cols column-major matrix u to a full orthonormal set using modified
// Gram-Schmidt over the standard basis.
func completeBasis(u []complex128, m, ldu, filled, cols int) {
	cand := 0
	for j := filled; j < cols; j++ {
		for ; cand <= m; cand++ {
			vec := make([]complex128, m)
			if cand < m {
				vec[cand] = 1
			}
			for c := 0; c < j; c++ {
				var dot complex128
				for i := 0; i < m; i++ {
					dot += cmplx.Conj(u[i+c*ldu]) * vec[i]
				}
				for i := 0; i < m; i++ {
					vec[i] -= dot * u[i+c*ldu]
				}
			}
			var sum float64
			for i := 0; i < m; i++ {
				sum += real(vec[i])*real(vec[i]) + imag(vec[i])*imag(vec[i])
			}
			if norm := math.Sqrt(sum); norm > 0.5 {
				inv := complex(1/norm, 0)
				for i := 0; i < m; i++ {
					u[i+j*ldu] = vec[i] * inv
				}
				cand++
				break
			}
		}
	}
}

// complex128 entry points.

func getrfC128(m, n int, a unsafe.Pointer, ipiv []int32) int32 {
	return luComplexCore(m, n, c128View(a, m*n), ipiv)
}

func heevC128(uplo solver.FillMode, n int, a, w unsafe.Pointer) int32 {
	return heevCore(uplo, n, c128View(a, n*n), f64View(w, n))
}

func gesvdC128(jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int) int32 {
	k := min(m, n)
	var uv, vtv []complex128
	if jobu != solver.SVDJobNone {
		uv = c128View(u, uvElems(jobu, m, k, ldu))
	}
	if jobvt != solver.SVDJobNone {
		vtv = c128View(vt, ldvt*n)
	}
	return gesvdComplexCore(jobu, jobvt, m, n, c128View(a, m*n), f64View(s, k), uv, vtv, ldu, ldvt)
}

// complex64 entry points.

func getrfC64(m, n int, a unsafe.Pointer, ipiv []int32) int32 {
	av := c64View(a, m*n)
	tmp := make([]complex128, m*n)
	c64ToC128(tmp, av)
	st := luComplexCore(m, n, tmp, ipiv)
	c128ToC64(av, tmp)
	return st
}

func heevC64(uplo solver.FillMode, n int, a, w unsafe.Pointer) int32 {
	av, wv := c64View(a, n*n), f32View(w, n)
	tmpA := make([]complex128, n*n)
	tmpW := make([]float64, n)
	c64ToC128(tmpA, av)
	st := heevCore(uplo, n, tmpA, tmpW)
	if st != 0 {
		return st
	}
	c128ToC64(av, tmpA)
	f64ToF32(wv, tmpW)
	return 0
}

func gesvdC64(jobu, jobvt solver.SVDJob, m, n int, a, s, u, vt unsafe.Pointer, ldu, ldvt int) int32 {
	k := min(m, n)
	av, sView := c64View(a, m*n), f32View(s, k)
	tmpA := make([]complex128, m*n)
	tmpS := make([]float64, k)
	c64ToC128(tmpA, av)
	var tmpU, tmpVT []complex128
	if jobu != solver.SVDJobNone {
		tmpU = make([]complex128, uvElems(jobu, m, k, ldu))
	}
	if jobvt != solver.SVDJobNone {
		tmpVT = make([]complex128, ldvt*n)
	}
	st := gesvdComplexCore(jobu, jobvt, m, n, tmpA, tmpS, tmpU, tmpVT, ldu, ldvt)
	c128ToC64(av, tmpA)
	f64ToF32(sView, tmpS)
	if jobu != solver.SVDJobNone {
		c128ToC64(c64View(u, len(tmpU)), tmpU)
	}
	if jobvt != solver.SVDJobNone {
		c128ToC64(c64View(vt, len(tmpVT)), tmpVT)
	}
	return st
}
