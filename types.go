package algosolver

import "fmt"

// ElementKind identifies one of the closed set of element types known to
// the solver backends. It is a fixed-size integer so descriptor records
// that embed it have a stable layout.
type ElementKind int32

const (
	KindF32 ElementKind = iota
	KindF64
	KindC64
	KindC128
)

// Size returns the byte size of one element of this kind.
func (k ElementKind) Size() int {
	switch k {
	case KindF32:
		return 4
	case KindF64:
		return 8
	case KindC64:
		return 8
	case KindC128:
		return 16
	default:
		return 0
	}
}

// Real returns the real-valued companion kind: eigenvalues and singular
// values of complex matrices are real, stored at half the element width.
func (k ElementKind) Real() ElementKind {
	switch k {
	case KindC64:
		return KindF32
	case KindC128:
		return KindF64
	default:
		return k
	}
}

// Complex reports whether the kind is a complex element type.
func (k ElementKind) Complex() bool {
	return k == KindC64 || k == KindC128
}

func (k ElementKind) String() string {
	switch k {
	case KindF32:
		return "float32"
	case KindF64:
		return "float64"
	case KindC64:
		return "complex64"
	case KindC128:
		return "complex128"
	default:
		return fmt.Sprintf("ElementKind(%d)", int32(k))
	}
}

// DType is the external numeric element description handed to the
// planners: a type-class byte ('f' for float, 'c' for complex) and the
// per-element byte size, the way array protocols describe dtypes.
type DType struct {
	Kind     byte
	ItemSize int
}

var elementKinds = map[DType]ElementKind{
	{'f', 4}:  KindF32,
	{'f', 8}:  KindF64,
	{'c', 8}:  KindC64,
	{'c', 16}: KindC128,
}

// ResolveElementKind maps an external element description to an
// ElementKind. Unrecognized descriptions fail here, at planning time,
// never during dispatch.
func ResolveElementKind(dt DType) (ElementKind, error) {
	k, ok := elementKinds[dt]
	if !ok {
		return 0, fmt.Errorf("%w: %c%d", ErrUnsupportedType, dt.Kind, dt.ItemSize)
	}
	return k, nil
}

// FillMode selects which triangle of a symmetric/Hermitian input holds the
// caller's data.
type FillMode int32

const (
	FillLower FillMode = iota
	FillUpper
)

func (m FillMode) String() string {
	if m == FillLower {
		return "lower"
	}
	return "upper"
}

// ResolveFillMode maps the planner's boolean flag to a FillMode.
func ResolveFillMode(lower bool) FillMode {
	if lower {
		return FillLower
	}
	return FillUpper
}

// SVDJob selects how much of the singular-vector matrices gesvd computes.
// The values follow the LAPACK job characters.
type SVDJob int8

const (
	SVDJobAll     SVDJob = 'A' // full U (m×m) and V^T (n×n)
	SVDJobReduced SVDJob = 'S' // leading min(m,n) singular vectors only
	SVDJobNone    SVDJob = 'N' // singular values only
)

// ResolveSVDJob collapses the two planner booleans into the 3-way job code
// applied to both U and V^T.
func ResolveSVDJob(computeUV, fullMatrices bool) SVDJob {
	switch {
	case !computeUV:
		return SVDJobNone
	case fullMatrices:
		return SVDJobAll
	default:
		return SVDJobReduced
	}
}
