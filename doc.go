// Package algosolver dispatches batched dense linear-algebra operations
// (LU factorization, symmetric/Hermitian eigendecomposition, singular value
// decomposition) to an accelerator backend through an opaque custom-call
// interface: an execution stream, a list of raw device buffer addresses,
// and a fixed-layout descriptor transmitted as a byte blob.
//
// The package splits every operation into a planning step and a dispatch
// step. Planning runs on the host before any device work: it resolves the
// element kind, queries the backend for the required scratch workspace and
// packs the operation parameters into a descriptor. Dispatch later unpacks
// the descriptor, borrows a pooled solver context bound to the caller's
// stream, and enqueues the batched kernels. Per-instance numerical failures
// (singular matrices, non-convergence) are reported through a status buffer
// and never abort the batch.
//
// Backends implement the Backend and Context interfaces. The gpu
// subpackage ships a CPU-backed mock backend for development and tests and
// a CUDA stub behind the "cuda" build tag.
package algosolver
