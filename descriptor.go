package algosolver

import (
	"fmt"
	"unsafe"
)

// Descriptors are fixed-layout records that carry an operation's static
// parameters from the planning call to the later dispatch call. They cross
// the custom-call boundary as opaque byte blobs, so the serialized form is
// simply the in-memory layout of the record: zero-copy, but valid only
// within a single build on a single architecture. Unpacking validates the
// exact byte size and nothing else.

// GetrfDescriptor parameterizes a batched LU factorization.
type GetrfDescriptor struct {
	Kind  ElementKind
	Batch int32
	M, N  int32
}

// SyevdDescriptor parameterizes a batched symmetric/Hermitian
// eigendecomposition using the QR algorithm.
type SyevdDescriptor struct {
	Kind  ElementKind
	Uplo  FillMode
	Batch int32
	N     int32
	Lwork int32
}

// SyevjDescriptor parameterizes a batched symmetric/Hermitian
// eigendecomposition using the Jacobi algorithm.
type SyevjDescriptor struct {
	Kind  ElementKind
	Uplo  FillMode
	Batch int32
	N     int32
	Lwork int32
}

// GesvdDescriptor parameterizes a batched singular value decomposition.
type GesvdDescriptor struct {
	Kind  ElementKind
	Batch int32
	M, N  int32
	Lwork int32
	Jobu  SVDJob
	Jobvt SVDJob
}

// packDescriptor serializes a descriptor record into an opaque byte blob
// of exactly the record's size, including any trailing padding.
func packDescriptor[T any](d *T) []byte {
	size := int(unsafe.Sizeof(*d))
	blob := make([]byte, size)
	copy(blob, unsafe.Slice((*byte)(unsafe.Pointer(d)), size))
	return blob
}

// unpackDescriptor reinterprets an opaque blob as a descriptor record. The
// returned pointer aliases the blob and must be treated as read-only. A
// blob whose length differs from the record size fails with
// ErrDescriptorSize.
func unpackDescriptor[T any](opaque []byte) (*T, error) {
	var zero T
	want := int(unsafe.Sizeof(zero))
	if len(opaque) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDescriptorSize, len(opaque), want)
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(opaque))), nil
}
