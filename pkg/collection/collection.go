// Package collection provides generic, functional-style helpers for
// slices: Map, Filter, First, FirstIndex, Contains, Sum.
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// FirstIndex returns the index of the first element matching fn, or -1.
// Useful when the caller needs to mutate the element in place.
func FirstIndex[T any](s []T, fn func(T) bool) int {
	for i := range s {
		if fn(s[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether any element matches fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// Sum adds up fn(v) over all elements.
func Sum[T any, N int | int64 | float64](s []T, fn func(T) N) N {
	var total N
	for _, v := range s {
		total += fn(v)
	}
	return total
}
