//go:build !unix

package gpu

// Fallback for platforms without mmap support in x/sys/unix. Plain heap
// memory is good enough for the mock backend there.
func deviceAlloc(bytes int) ([]byte, error) {
	return make([]byte, bytes), nil
}

func deviceFree(mem []byte) error {
	return nil
}
