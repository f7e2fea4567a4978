package appraisal

import (
	"iter"
	"slices"
)

// Chunks yields consecutive, order preserving sub-slices of items with at
// most size elements each. Only the last chunk may be shorter. A size below
// one yields nothing.
func Chunks[T any](items []T, size int) iter.Seq[[]T] {
	if size < 1 || len(items) == 0 {
		return func(func([]T) bool) {}
	}
	return slices.Chunk(items, size)
}

// ChunkCount returns how many chunks Chunks yields for n items.
func ChunkCount(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
