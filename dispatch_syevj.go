package algosolver

import (
	"fmt"
	"unsafe"
)

// Syevj dispatches a batched symmetric/Hermitian eigendecomposition using
// the Jacobi algorithm. Buffer layout matches Syevd: [input, eigenvectors,
// eigenvalues, status, workspace].
//
// A batch of one runs the single-matrix kernel. A larger batch runs the
// capability's natively batched kernel exactly once for the whole batch;
// that kernel only supports small matrix dimensions, and exceeding its
// limit surfaces as a capability error, not a status code.
func (s *Solver) Syevj(stream Stream, buffers []unsafe.Pointer, opaque []byte) error {
	d, err := unpackDescriptor[SyevjDescriptor](opaque)
	if err != nil {
		return err
	}
	if len(buffers) != 5 {
		return fmt.Errorf("%w: syevj wants 5 buffers, got %d", ErrBufferCount, len(buffers))
	}
	batch, n := int(d.Batch), int(d.N)

	h, err := s.pool.Borrow(stream)
	if err != nil {
		return err
	}
	defer h.Release()
	ctx := h.Context()

	if buffers[1] != buffers[0] {
		if err := s.backend.CopyAsync(buffers[1], buffers[0], d.Kind.Size()*batch*n*n, stream); err != nil {
			return fmt.Errorf("algosolver: syevj input copy: %w", err)
		}
	}

	params, err := ctx.NewJacobiParams()
	if err != nil {
		return fmt.Errorf("algosolver: create jacobi params: %w", err)
	}
	defer params.Destroy()

	a := buffers[1]
	w := buffers[2]
	status := buffers[3]
	work := buffers[4]

	if batch == 1 {
		err = ctx.Syevj(d.Kind, d.Uplo, n, a, w, work, int(d.Lwork), status, params)
	} else {
		err = ctx.SyevjBatched(d.Kind, d.Uplo, n, a, w, work, int(d.Lwork), status, params, batch)
	}
	if err != nil {
		return fmt.Errorf("algosolver: syevj: %w", err)
	}
	return nil
}
