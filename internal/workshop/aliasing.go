package workshop

// Exercise 2: subslice aliasing.
//
// Slicing does not copy. A subslice is a view of the parent's backing array,
// so mutation travels both ways and a tiny subslice keeps the whole parent
// array reachable.

// Head returns the first n elements as a view sharing s's backing array.
func Head(s []byte, n int) []byte {
	return s[:n]
}

// HeadCopy returns the first n elements in a fresh allocation, detached from s.
func HeadCopy(s []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, s[:n])
	return out
}

// Shared reports whether a and b share a backing array element at index 0.
// Both slices must be non-empty.
func Shared(a, b []byte) bool {
	return &a[0] == &b[0]
}
