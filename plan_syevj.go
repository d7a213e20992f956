package algosolver

import "fmt"

// BuildSyevjDescriptor plans a batched symmetric/Hermitian
// eigendecomposition using the Jacobi algorithm. A batch of one is sized
// for the single-matrix kernel; a larger batch is sized for the natively
// batched kernel, which the underlying capability restricts to small
// matrix dimensions. The Jacobi parameter state exists only for the
// duration of this call; it is not part of the descriptor.
func (s *Solver) BuildSyevjDescriptor(dtype DType, lower bool, batch, n int) (int, []byte, error) {
	kind, err := ResolveElementKind(dtype)
	if err != nil {
		return 0, nil, err
	}
	if batch < 1 || n < 1 {
		return 0, nil, fmt.Errorf("%w: syevj batch=%d n=%d", ErrInvalidShape, batch, n)
	}
	uplo := ResolveFillMode(lower)

	h, err := s.pool.Borrow(nil)
	if err != nil {
		return 0, nil, err
	}
	defer h.Release()
	ctx := h.Context()

	params, err := ctx.NewJacobiParams()
	if err != nil {
		return 0, nil, fmt.Errorf("algosolver: create jacobi params: %w", err)
	}
	defer params.Destroy()

	var lwork int
	if batch == 1 {
		lwork, err = ctx.SyevjWorkspace(kind, uplo, n, params)
	} else {
		lwork, err = ctx.SyevjBatchedWorkspace(kind, uplo, n, batch, params)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("algosolver: syevj workspace query: %w", err)
	}

	desc := SyevjDescriptor{
		Kind:  kind,
		Uplo:  uplo,
		Batch: int32(batch),
		N:     int32(n),
		Lwork: int32(lwork),
	}
	return lwork, packDescriptor(&desc), nil
}
