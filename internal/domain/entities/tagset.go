package entities

// TagSet is a set of tags keyed by exact string equality.
type TagSet map[string]struct{}

// NewTagSet returns a set holding the given tags.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts tag into the set.
func (s TagSet) Add(tag string) {
	s[tag] = struct{}{}
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s)
}

// IntersectsAny reports whether any of tags is in the set.
func (s TagSet) IntersectsAny(tags []string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}
