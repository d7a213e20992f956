package algosolver

import "fmt"

// BuildSyevdDescriptor plans a batched symmetric/Hermitian
// eigendecomposition (QR algorithm) of batch n×n matrices. Eigenvectors
// are always computed; lower selects which triangle of the input holds the
// caller's data.
func (s *Solver) BuildSyevdDescriptor(dtype DType, lower bool, batch, n int) (int, []byte, error) {
	kind, err := ResolveElementKind(dtype)
	if err != nil {
		return 0, nil, err
	}
	if batch < 1 || n < 1 {
		return 0, nil, fmt.Errorf("%w: syevd batch=%d n=%d", ErrInvalidShape, batch, n)
	}
	uplo := ResolveFillMode(lower)

	h, err := s.pool.Borrow(nil)
	if err != nil {
		return 0, nil, err
	}
	defer h.Release()

	lwork, err := h.Context().SyevWorkspace(kind, uplo, n)
	if err != nil {
		return 0, nil, fmt.Errorf("algosolver: syevd workspace query: %w", err)
	}

	desc := SyevdDescriptor{
		Kind:  kind,
		Uplo:  uplo,
		Batch: int32(batch),
		N:     int32(n),
		Lwork: int32(lwork),
	}
	return lwork, packDescriptor(&desc), nil
}
