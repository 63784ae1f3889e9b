package ecs

// IntersectEntities returns slot ids present in every set, in the order of the smallest set.
func IntersectEntities(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	src := smallest.ids()
	out := make([]entityID, 0, len(src))
	for _, id := range src {
		inAll := true
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out
}
