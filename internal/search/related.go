package search

// Related returns up to limit IDs of components related to id.
//
// Explicitly listed related IDs come first, in their listed order, skipping
// unknown IDs and the component itself. The remainder is filled with other
// components of the same category in catalog order.
func (e *Engine) Related(id string, limit int) []string {
	comp, ok := e.index.Lookup(id)
	if !ok || limit <= 0 {
		return []string{}
	}

	related := make([]string, 0, limit)
	seen := map[string]struct{}{id: {}}
	add := func(candidate string) bool {
		if _, dup := seen[candidate]; dup {
			return false
		}
		seen[candidate] = struct{}{}
		related = append(related, candidate)
		return len(related) == limit
	}

	for _, rid := range comp.Related {
		if _, exists := e.index.byID[rid]; !exists {
			continue
		}
		if add(rid) {
			return related
		}
	}

	for _, other := range e.index.components {
		if other.Category != comp.Category {
			continue
		}
		if add(other.ID) {
			return related
		}
	}
	return related
}
