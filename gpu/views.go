package gpu

import "unsafe"

// Typed views over raw device addresses. The mock backend's kernels work
// on these directly; the lengths come from the operation's shape
// parameters, never from the pointer.

func f32View(p unsafe.Pointer, n int) []float32 {
	return unsafe.Slice((*float32)(p), n)
}

func f64View(p unsafe.Pointer, n int) []float64 {
	return unsafe.Slice((*float64)(p), n)
}

func c64View(p unsafe.Pointer, n int) []complex64 {
	return unsafe.Slice((*complex64)(p), n)
}

func c128View(p unsafe.Pointer, n int) []complex128 {
	return unsafe.Slice((*complex128)(p), n)
}

func i32View(p unsafe.Pointer, n int) []int32 {
	return unsafe.Slice((*int32)(p), n)
}

func byteView(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

func f32ToF64(dst []float64, src []float32) {
	for i, v := range src {
		dst[i] = float64(v)
	}
}

func f64ToF32(dst []float32, src []float64) {
	for i, v := range src {
		dst[i] = float32(v)
	}
}

func c64ToC128(dst []complex128, src []complex64) {
	for i, v := range src {
		dst[i] = complex128(v)
	}
}

func c128ToC64(dst []complex64, src []complex128) {
	for i, v := range src {
		dst[i] = complex64(v)
	}
}
