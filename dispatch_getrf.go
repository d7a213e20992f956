package algosolver

import (
	"fmt"
	"unsafe"
)

// Getrf dispatches a batched LU factorization.
//
// Buffer layout: [input, output, workspace, pivots, status]. The input
// batch is copied to the output buffer on the caller's stream and factored
// in place there, so the caller's input survives the call. Pivots are
// batch×min(m,n) int32 values (1-based); status is one int32 per instance,
// non-zero for a singular instance.
func (s *Solver) Getrf(stream Stream, buffers []unsafe.Pointer, opaque []byte) error {
	d, err := unpackDescriptor[GetrfDescriptor](opaque)
	if err != nil {
		return err
	}
	if len(buffers) != 5 {
		return fmt.Errorf("%w: getrf wants 5 buffers, got %d", ErrBufferCount, len(buffers))
	}
	batch, m, n := int(d.Batch), int(d.M), int(d.N)

	h, err := s.pool.Borrow(stream)
	if err != nil {
		return err
	}
	defer h.Release()

	if buffers[1] != buffers[0] {
		if err := s.backend.CopyAsync(buffers[1], buffers[0], d.Kind.Size()*batch*m*n, stream); err != nil {
			return fmt.Errorf("algosolver: getrf input copy: %w", err)
		}
	}

	a := newBatchView(buffers[1], m*n, d.Kind.Size())
	work := buffers[2]
	ipiv := newBatchView(buffers[3], min(m, n), pivotSize)
	status := newBatchView(buffers[4], 1, statusSize)

	ctx := h.Context()
	for i := 0; i < batch; i++ {
		if err := ctx.Getrf(d.Kind, m, n, a.at(i), work, ipiv.at(i), status.at(i)); err != nil {
			return fmt.Errorf("algosolver: getrf instance %d: %w", i, err)
		}
	}
	return nil
}
