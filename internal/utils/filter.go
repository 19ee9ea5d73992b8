package utils

// Filter returns the elements of slice for which keep returns true.
// The result is never nil so it encodes as an empty JSON array.
func Filter[T any](slice []T, keep func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// Count returns how many elements satisfy match
func Count[T any](slice []T, match func(T) bool) int {
	n := 0
	for _, item := range slice {
		if match(item) {
			n++
		}
	}
	return n
}

// Contains reports whether want is in slice
func Contains[T comparable](slice []T, want T) bool {
	for _, item := range slice {
		if item == want {
			return true
		}
	}
	return false
}
