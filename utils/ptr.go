package utils

// HeapPtr allocates a value into the heap and returns a pointer to it
func HeapPtr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
