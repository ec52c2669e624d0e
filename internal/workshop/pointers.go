package workshop

// Exercise 1: pointers into slices.
//
// Taking the address of a slice element is safe only while the slice keeps
// its backing array. An append past capacity moves the elements to a new
// array and the old pointer keeps referring to the abandoned one.

// ElementPointer returns the address of s[i].
//
// The pointer is only guaranteed to alias the slice while no append
// reallocates the backing array.
func ElementPointer(s []int, i int) *int {
	return &s[i]
}

// GrowPastCapacity appends enough elements to force a reallocation.
func GrowPastCapacity(s []int) []int {
	extra := cap(s) - len(s) + 1
	for i := 0; i < extra; i++ {
		s = append(s, 0)
	}
	return s
}

// SetFirst writes v to the first element through the slice header.
func SetFirst(s []int, v int) {
	s[0] = v
}

// FirstByIndex reads the first element fresh from the slice, the safe
// alternative to holding an element pointer across appends.
func FirstByIndex(s []int) int {
	return s[0]
}
