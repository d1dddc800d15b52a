package pool

import (
	"sync"

	"github.com/arloliu/polycode/format"
)

// Slice pools reused by the traversal engine across the configuration search.
var (
	commandSlicePool = sync.Pool{
		New: func() any { return &[]format.Command{} },
	}
	boolSlicePool = sync.Pool{
		New: func() any { return &[]bool{} },
	}
)

// GetCommandSlice retrieves a command slice of exactly size elements.
//
// The contents are unspecified; callers overwrite before reading.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []format.Command: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer)
func GetCommandSlice(size int) ([]format.Command, func()) {
	ptr, _ := commandSlicePool.Get().(*[]format.Command)
	slice := resize(*ptr, size)
	*ptr = slice

	return slice, func() { commandSlicePool.Put(ptr) }
}

// GetBoolSlice retrieves a bool slice of exactly size elements, all false.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []bool: A zeroed slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer)
func GetBoolSlice(size int) ([]bool, func()) {
	ptr, _ := boolSlicePool.Get().(*[]bool)
	slice := resize(*ptr, size)
	clear(slice)
	*ptr = slice

	return slice, func() { boolSlicePool.Put(ptr) }
}

func resize[T any](slice []T, size int) []T {
	if cap(slice) < size {
		return make([]T, size)
	}

	return slice[:size]
}
