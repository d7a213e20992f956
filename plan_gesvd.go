package algosolver

import "fmt"

// BuildGesvdDescriptor plans a batched singular value decomposition of
// batch m×n matrices. computeUV selects whether singular vectors are
// computed at all; fullMatrices selects full (m×m, n×n) versus reduced
// (m×k, k×n with k=min(m,n)) vector outputs. The two booleans collapse
// into one 3-way job code applied to both U and V^T.
func (s *Solver) BuildGesvdDescriptor(dtype DType, batch, m, n int, computeUV, fullMatrices bool) (int, []byte, error) {
	kind, err := ResolveElementKind(dtype)
	if err != nil {
		return 0, nil, err
	}
	if batch < 1 || m < 1 || n < 1 {
		return 0, nil, fmt.Errorf("%w: gesvd batch=%d m=%d n=%d", ErrInvalidShape, batch, m, n)
	}

	h, err := s.pool.Borrow(nil)
	if err != nil {
		return 0, nil, err
	}
	defer h.Release()

	lwork, err := h.Context().GesvdWorkspace(kind, m, n)
	if err != nil {
		return 0, nil, fmt.Errorf("algosolver: gesvd workspace query: %w", err)
	}

	job := ResolveSVDJob(computeUV, fullMatrices)
	desc := GesvdDescriptor{
		Kind:  kind,
		Batch: int32(batch),
		M:     int32(m),
		N:     int32(n),
		Lwork: int32(lwork),
		Jobu:  job,
		Jobvt: job,
	}
	return lwork, packDescriptor(&desc), nil
}
