package workshop

// Exercise 4: method sets.
//
// A value receiver gets a copy, so mutations vanish when the method returns.
// Only a pointer receiver can change the original, and only addressable
// values provide one.

// Playhead tracks a position in a track listing.
type Playhead struct {
	Position int
}

// SkipValue advances a copy of the playhead. The receiver is a value, so the
// caller's playhead does not move.
func (p Playhead) SkipValue() {
	p.Position++
}

// Skip advances the playhead in place.
func (p *Playhead) Skip() {
	p.Position++
}

// Skipper is satisfied by *Playhead but not by Playhead: Skip has a pointer
// receiver, so the method set of the value type does not include it.
type Skipper interface {
	Skip()
}
