// Package gpu provides backends for the algosolver dispatch layer.
//
// The mock backend executes every kernel on the CPU while presenting the
// same raw-pointer device interface a real accelerator backend would, so
// the planning, pooling and dispatch machinery can be exercised end to end
// without a device. Device memory comes from an mmap'd arena outside the
// Go heap, matching the aliasing rules real device pointers obey. The CUDA
// backend behind the "cuda" build tag is a stub.
package gpu
