package model

type tagSet map[string]struct{}

func newTagSet(tags []string) tagSet {
	set := make(tagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// overlap returns the size of the intersection of two sets.
func (s tagSet) overlap(other tagSet) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}

	n := 0
	for t := range small {
		if _, ok := large[t]; ok {
			n++
		}
	}
	return n
}
