//go:build unix

package gpu

import "golang.org/x/sys/unix"

// deviceAlloc obtains page-aligned memory outside the Go heap. The mock
// backend hands raw addresses into this memory across the dispatch ABI,
// where Go heap pointers must not appear.
func deviceAlloc(bytes int) ([]byte, error) {
	return unix.Mmap(-1, 0, bytes,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
}

func deviceFree(mem []byte) error {
	return unix.Munmap(mem)
}
