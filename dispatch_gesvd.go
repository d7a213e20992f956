package algosolver

import (
	"fmt"
	"unsafe"
)

// Gesvd dispatches a batched singular value decomposition.
//
// Buffer layout: [input, output, singular-values, U, V^T, status,
// workspace]. The input is copied to the output buffer and destroyed
// there by the factorization. Singular values are batch×min(m,n) values of
// the real companion kind, descending. The per-instance strides of the
// vector buffers follow the job code: m×m and n×n for SVDJobAll, m×k and
// k×n for SVDJobReduced, and nothing is written for SVDJobNone.
func (s *Solver) Gesvd(stream Stream, buffers []unsafe.Pointer, opaque []byte) error {
	d, err := unpackDescriptor[GesvdDescriptor](opaque)
	if err != nil {
		return err
	}
	if len(buffers) != 7 {
		return fmt.Errorf("%w: gesvd wants 7 buffers, got %d", ErrBufferCount, len(buffers))
	}
	batch, m, n := int(d.Batch), int(d.M), int(d.N)
	k := min(m, n)

	h, err := s.pool.Borrow(stream)
	if err != nil {
		return err
	}
	defer h.Release()

	if buffers[1] != buffers[0] {
		if err := s.backend.CopyAsync(buffers[1], buffers[0], d.Kind.Size()*batch*m*n, stream); err != nil {
			return fmt.Errorf("algosolver: gesvd input copy: %w", err)
		}
	}

	var uElems, vtElems, ldu, ldvt int
	switch d.Jobu {
	case SVDJobAll:
		uElems, vtElems = m*m, n*n
		ldu, ldvt = m, n
	case SVDJobReduced:
		uElems, vtElems = m*k, k*n
		ldu, ldvt = m, k
	default:
		ldu, ldvt = m, k
	}

	a := newBatchView(buffers[1], m*n, d.Kind.Size())
	sv := newBatchView(buffers[2], k, d.Kind.Real().Size())
	u := newBatchView(buffers[3], uElems, d.Kind.Size())
	vt := newBatchView(buffers[4], vtElems, d.Kind.Size())
	status := newBatchView(buffers[5], 1, statusSize)
	work := buffers[6]

	ctx := h.Context()
	for i := 0; i < batch; i++ {
		err := ctx.Gesvd(d.Kind, d.Jobu, d.Jobvt, m, n,
			a.at(i), sv.at(i), u.at(i), vt.at(i), ldu, ldvt,
			work, int(d.Lwork), status.at(i))
		if err != nil {
			return fmt.Errorf("algosolver: gesvd instance %d: %w", i, err)
		}
	}
	return nil
}
