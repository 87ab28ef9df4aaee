package numerics

// LCG constants. These exact values - multiplier, increment, and the
// 31-bit mask - are a documented public contract: any reimplementation of
// the engine in another language must produce the identical sequence for
// identical seeds, or bootstrap intervals stop matching issued results.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
)

// DeterministicSequence is the seeded linear-congruential generator used
// wherever determinism across runs is required (bootstrap index selection).
// It is deliberately not a math/rand source: the guarantee is a fixed
// sequence, not statistical quality.
type DeterministicSequence struct {
	state int64
}

// NewDeterministicSequence creates a sequence starting from seed
func NewDeterministicSequence(seed int64) *DeterministicSequence {
	return &DeterministicSequence{state: seed & lcgMask}
}

// Next advances the sequence and returns the new 31-bit state
func (s *DeterministicSequence) Next() int64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) & lcgMask
	return s.state
}

// Intn returns a value in [0, n) drawn from the next sequence step
func (s *DeterministicSequence) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() % int64(n))
}
