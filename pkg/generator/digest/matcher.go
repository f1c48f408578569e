package digest

// Matcher checks hex digests for a run of trailing '0' characters.
// It works on byte slices so the hot loop never converts to string.
type Matcher struct {
	zeros int
}

// NewMatcher creates a Matcher requiring zeros trailing '0' digits.
func NewMatcher(zeros int) *Matcher {
	return &Matcher{zeros: zeros}
}

// Zeros returns the required number of trailing zeros.
func (m *Matcher) Zeros() int {
	return m.zeros
}

// Matches reports whether the last m.Zeros() bytes of digest are all '0'.
// A digest shorter than the requirement never matches.
func (m *Matcher) Matches(digest []byte) bool {
	if m.zeros > len(digest) {
		return false
	}
	for _, c := range digest[len(digest)-m.zeros:] {
		if c != '0' {
			return false
		}
	}
	return true
}

// IsMatch reports whether the last zeroCount characters of digest are all '0'.
func IsMatch(digest string, zeroCount int) bool {
	if zeroCount > len(digest) {
		return false
	}
	for i := len(digest) - zeroCount; i < len(digest); i++ {
		if digest[i] != '0' {
			return false
		}
	}
	return true
}
