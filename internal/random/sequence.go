package random

// Sequence replays a fixed list of draws, cycling when exhausted. Each value
// is reduced modulo n so it always lands inside the requested range.
type Sequence struct {
	values []int
	next   int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Intn returns the next value in the sequence modulo n.
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	if s == nil || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	if s == nil {
		return 0
	}
	return s.next
}
