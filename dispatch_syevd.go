package algosolver

import (
	"fmt"
	"unsafe"
)

// Syevd dispatches a batched symmetric/Hermitian eigendecomposition using
// the QR algorithm.
//
// Buffer layout: [input, eigenvectors, eigenvalues, status, workspace].
// The input batch is copied to the eigenvector buffer and overwritten with
// the orthonormal eigenvectors; eigenvalues are batch×n values of the real
// companion kind, ascending. A non-zero status marks an instance that
// failed to converge.
func (s *Solver) Syevd(stream Stream, buffers []unsafe.Pointer, opaque []byte) error {
	d, err := unpackDescriptor[SyevdDescriptor](opaque)
	if err != nil {
		return err
	}
	if len(buffers) != 5 {
		return fmt.Errorf("%w: syevd wants 5 buffers, got %d", ErrBufferCount, len(buffers))
	}
	batch, n := int(d.Batch), int(d.N)

	h, err := s.pool.Borrow(stream)
	if err != nil {
		return err
	}
	defer h.Release()

	if buffers[1] != buffers[0] {
		if err := s.backend.CopyAsync(buffers[1], buffers[0], d.Kind.Size()*batch*n*n, stream); err != nil {
			return fmt.Errorf("algosolver: syevd input copy: %w", err)
		}
	}

	a := newBatchView(buffers[1], n*n, d.Kind.Size())
	w := newBatchView(buffers[2], n, d.Kind.Real().Size())
	status := newBatchView(buffers[3], 1, statusSize)
	work := buffers[4]

	ctx := h.Context()
	for i := 0; i < batch; i++ {
		if err := ctx.Syev(d.Kind, d.Uplo, n, a.at(i), w.at(i), work, int(d.Lwork), status.at(i)); err != nil {
			return fmt.Errorf("algosolver: syevd instance %d: %w", i, err)
		}
	}
	return nil
}
