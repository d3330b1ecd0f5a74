package tdedup

// SeenSet holds the fingerprints of all records passed so far in one run
//
// The set only grows. It's shared by all input files of the same run and discarded at the end.
type SeenSet struct {
	digests map[string]struct{}
}

// NewSeenSet creates an empty SeenSet
func NewSeenSet() *SeenSet {
	return &SeenSet{
		digests: make(map[string]struct{}, 10000),
	}
}

// IsDuplicateAndMark returns true if the digest has been seen, or otherwise records it and returns false
func (s *SeenSet) IsDuplicateAndMark(digest string) bool {
	if _, exists := s.digests[digest]; exists {
		return true
	}
	s.digests[digest] = struct{}{}
	return false
}

// Len returns the numbers of distinct digests seen
func (s *SeenSet) Len() int {
	return len(s.digests)
}
