package algosolver

import "fmt"

// BuildGetrfDescriptor plans a batched LU factorization of batch m×n
// matrices with elements described by dtype. It returns the workspace size
// in elements, so the caller can allocate the scratch buffer before
// dispatch, and the packed descriptor for the later Getrf call.
func (s *Solver) BuildGetrfDescriptor(dtype DType, batch, m, n int) (int, []byte, error) {
	kind, err := ResolveElementKind(dtype)
	if err != nil {
		return 0, nil, err
	}
	if batch < 1 || m < 1 || n < 1 {
		return 0, nil, fmt.Errorf("%w: getrf batch=%d m=%d n=%d", ErrInvalidShape, batch, m, n)
	}

	h, err := s.pool.Borrow(nil)
	if err != nil {
		return 0, nil, err
	}
	defer h.Release()

	lwork, err := h.Context().GetrfWorkspace(kind, m, n)
	if err != nil {
		return 0, nil, fmt.Errorf("algosolver: getrf workspace query: %w", err)
	}

	desc := GetrfDescriptor{
		Kind:  kind,
		Batch: int32(batch),
		M:     int32(m),
		N:     int32(n),
	}
	return lwork, packDescriptor(&desc), nil
}
