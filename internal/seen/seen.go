package seen

// Set records asset ids that have already been accounted for. It grows
// monotonically for the lifetime of a tracker run and is owned by a
// single goroutine, so it carries no locking.
type Set struct {
	ids map[string]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// CheckAndMark reports whether the asset id was seen before, marking it
// as seen if it was not. Returns false exactly once per id.
func (s *Set) CheckAndMark(assetID string) bool {
	if _, ok := s.ids[assetID]; ok {
		return true
	}
	s.ids[assetID] = struct{}{}
	return false
}

// Len returns the number of recorded ids.
func (s *Set) Len() int {
	return len(s.ids)
}
