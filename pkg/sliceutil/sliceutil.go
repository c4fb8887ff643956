// Package sliceutil provides generic helpers for slices.
package sliceutil

// Contains reports whether item is present in slice.
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Unique returns a new slice with duplicates removed, preserving the order of
// first occurrence.
func Unique[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	var result []T
	for _, v := range slice {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
