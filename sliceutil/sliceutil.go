// Package sliceutil has predicate-driven prefix and suffix helpers.
//
// All functions return sub-slices of the input; nothing is copied.
package sliceutil

// SkipWhile drops the leading elements for which pred holds.
func SkipWhile[T any](s []T, pred func(T) bool) []T {
	for i, v := range s {
		if !pred(v) {
			return s[i:]
		}
	}
	return s[:0]
}

// SkipFromRightWhile drops the trailing elements for which pred holds.
func SkipFromRightWhile[T any](s []T, pred func(T) bool) []T {
	for i := len(s) - 1; i >= 0; i-- {
		if !pred(s[i]) {
			return s[:i+1]
		}
	}
	return s[:0]
}

// TakeUntil returns the elements before the first one for which pred holds.
func TakeUntil[T any](s []T, pred func(T) bool) []T {
	for i, v := range s {
		if pred(v) {
			return s[:i]
		}
	}
	return s
}

// TakeWhile returns the leading elements for which pred holds.
func TakeWhile[T any](s []T, pred func(T) bool) []T {
	for i, v := range s {
		if !pred(v) {
			return s[:i]
		}
	}
	return s
}

// Never is a predicate that matches nothing.
func Never[T any](T) bool { return false }
