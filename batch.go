package algosolver

import "unsafe"

// statusSize is the byte size of one per-instance status code (int32).
const statusSize = 4

// pivotSize is the byte size of one pivot index (int32).
const pivotSize = 4

// batchView addresses per-instance operands inside a flat device buffer.
// Instance i of an operand with elems elements of elemSize bytes lives at
// base + i*elems*elemSize. Centralizing the stride computation here keeps
// the dispatchers free of raw pointer arithmetic.
type batchView struct {
	base   unsafe.Pointer
	stride int
}

func newBatchView(base unsafe.Pointer, elems, elemSize int) batchView {
	return batchView{base: base, stride: elems * elemSize}
}

func (v batchView) at(i int) unsafe.Pointer {
	return unsafe.Add(v.base, i*v.stride)
}
