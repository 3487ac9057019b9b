package compile

import (
	"slices"
	"strings"
)

// hierarchy is the containment forest derived from bounding-box geometry.
// Each node has at most one immediate parent: the smallest-area group whose
// box fully encloses it.
type hierarchy struct {
	parent   map[string]string    // node id -> immediate parent group id
	children map[string][]nodeRef // group id -> immediate members, input order
	roots    []nodeRef            // nodes with no enclosing group, input order
}

// buildHierarchy computes parent-group assignment for every node. Groups are
// candidates for containment themselves, which is what makes nesting work; a
// group is never its own parent.
//
// When two candidate groups tie on area, the lower normalized id wins.
// Candidates are processed in id order, so assignment does not depend on the
// input ordering of the document.
func buildHierarchy(d *document) *hierarchy {
	h := &hierarchy{
		parent:   make(map[string]string),
		children: make(map[string][]nodeRef),
	}

	groups := make([]nodeRef, 0)
	for _, n := range d.nodes {
		if n.IsGroup() {
			groups = append(groups, n)
		}
	}

	ordered := make([]nodeRef, len(d.nodes))
	copy(ordered, d.nodes)
	slices.SortFunc(ordered, func(a, b nodeRef) int {
		return strings.Compare(a.id, b.id)
	})

	for _, cand := range ordered {
		enclosing := make([]nodeRef, 0)
		for _, g := range groups {
			if g.id == cand.id {
				continue
			}
			if g.Encloses(cand.Node) {
				enclosing = append(enclosing, g)
			}
		}
		slices.SortFunc(enclosing, func(a, b nodeRef) int {
			if c := cmpFloat(a.Area(), b.Area()); c != 0 {
				return c
			}
			return strings.Compare(a.id, b.id)
		})

		for _, g := range enclosing {
			// Identical boxes contain each other; skip any assignment that
			// would close a cycle so the result stays a forest.
			if cand.IsGroup() && h.isAncestor(cand.id, g.id) {
				continue
			}
			h.parent[cand.id] = g.id
			break
		}
	}

	// Rebuild member lists in input order; comparators re-sort them later.
	for _, n := range d.nodes {
		if p, ok := h.parent[n.id]; ok {
			h.children[p] = append(h.children[p], n)
		} else {
			h.roots = append(h.roots, n)
		}
	}

	return h
}

// isAncestor reports whether anc appears on the parent chain above id.
func (h *hierarchy) isAncestor(anc, id string) bool {
	for {
		p, ok := h.parent[id]
		if !ok {
			return false
		}
		if p == anc {
			return true
		}
		id = p
	}
}

// cmpFloat is a three-way comparison for float64 sort keys.
func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
