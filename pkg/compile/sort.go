package compile

import (
	"slices"
	"strings"

	"github.com/matzehuels/canvasort/pkg/canvas"
)

// scopeKind parameterizes the node comparator by where in the hierarchy the
// comparison happens.
type scopeKind int

const (
	scopeRootOrphans scopeKind = iota // non-group nodes with no enclosing group
	scopeRootGroups                   // top-level groups
	scopeChildren                     // non-group members of one group
	scopeSubgroups                    // nested groups, siblings of each other
)

// sorter bundles the settings and derived structures the comparators need.
// Every comparator is total: chains always end on the normalized id, so two
// distinct entries never compare equal.
type sorter struct {
	settings Settings
	flows    *flowIndex // nil when flow sorting is disabled
	doc      *document
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpPosition orders by y, then x, top-to-bottom and left-to-right.
func cmpPosition(ay, ax, by, bx float64) int {
	if c := cmpFloat(ay, by); c != 0 {
		return c
	}
	return cmpFloat(ax, bx)
}

// typeRank orders node types. Link nodes sort after every other type; the
// remaining types keep their relative order from the other keys.
func typeRank(n *canvas.Node) int {
	if n.Type == canvas.TypeLink {
		return 1
	}
	return 0
}

// sortNodes sorts refs in place with the scope-appropriate comparator.
func (s *sorter) sortNodes(refs []nodeRef, kind scopeKind) {
	sortStable(refs, func(a, b nodeRef) int {
		return s.compareNodes(a, b, kind)
	})
}

// compareNodes is the node comparator described by the ordering contract:
//
//  1. With flow sorting active, nodes that belong to flow groups order by
//     topology first: same group compares by depth, different groups by
//     anchor position, and a flow-group node beats an isolated node that
//     ties with its group's anchor.
//  2. Children of a group order semantically (type, color, content) rather
//     than spatially.
//  3. Everything else orders spatially by (y, x).
//
// All chains finish with the content key and normalized id so the order is
// total.
func (s *sorter) compareNodes(a, b nodeRef, kind scopeKind) int {
	if s.flows != nil {
		if c, decided := s.compareFlow(a, b); decided {
			return c
		}
	}

	semantic := kind == scopeChildren ||
		(kind == scopeRootOrphans && s.settings.SemanticSortOrphans)
	if semantic {
		return s.compareSemantic(a, b)
	}
	return s.compareSpatial(a, b)
}

// compareFlow applies flow-group ordering when at least one side belongs to
// a flow group. The second return value reports whether the comparison was
// decided here.
func (s *sorter) compareFlow(a, b nodeRef) (int, bool) {
	ga, gb := s.flows.groupOf(a.id), s.flows.groupOf(b.id)
	switch {
	case ga == nil && gb == nil:
		return 0, false
	case ga != nil && gb != nil && ga == gb:
		if c := cmpInt(ga.depth[a.id], ga.depth[b.id]); c != 0 {
			return c, true
		}
		if c := cmpPosition(a.PosY(), a.PosX(), b.PosY(), b.PosX()); c != 0 {
			return c, true
		}
		if s.settings.ColorSortNodes {
			if c := strings.Compare(a.ColorKey(), b.ColorKey()); c != 0 {
				return c, true
			}
		}
		if c := strings.Compare(a.ContentKey(), b.ContentKey()); c != 0 {
			return c, true
		}
		return strings.Compare(a.id, b.id), true
	case ga != nil && gb != nil:
		if c := cmpPosition(ga.anchorY, ga.anchorX, gb.anchorY, gb.anchorX); c != 0 {
			return c, true
		}
		// Anchors tie only for overlapping groups; fall back to the nodes
		// themselves to stay total.
		return s.compareSpatial(a, b), true
	case ga != nil:
		if c := cmpPosition(ga.anchorY, ga.anchorX, b.PosY(), b.PosX()); c != 0 {
			return c, true
		}
		return -1, true // flow group wins ties against isolated nodes
	default:
		if c := cmpPosition(a.PosY(), a.PosX(), gb.anchorY, gb.anchorX); c != 0 {
			return c, true
		}
		return 1, true
	}
}

// compareSpatial orders by position, then type, color, content, and id.
func (s *sorter) compareSpatial(a, b nodeRef) int {
	if c := cmpPosition(a.PosY(), a.PosX(), b.PosY(), b.PosX()); c != 0 {
		return c
	}
	if c := cmpInt(typeRank(a.Node), typeRank(b.Node)); c != 0 {
		return c
	}
	if s.settings.ColorSortNodes {
		if c := strings.Compare(a.ColorKey(), b.ColorKey()); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.ContentKey(), b.ContentKey()); c != 0 {
		return c
	}
	return strings.Compare(a.id, b.id)
}

// compareSemantic orders by type, color, and content, ignoring position.
func (s *sorter) compareSemantic(a, b nodeRef) int {
	if c := cmpInt(typeRank(a.Node), typeRank(b.Node)); c != 0 {
		return c
	}
	if s.settings.ColorSortNodes {
		if c := strings.Compare(a.ColorKey(), b.ColorKey()); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.ContentKey(), b.ContentKey()); c != 0 {
		return c
	}
	return strings.Compare(a.id, b.id)
}

// sortEdges sorts refs in place with the edge comparator.
func (s *sorter) sortEdges(refs []edgeRef) {
	sortStable(refs, s.compareEdges)
}

// compareEdges orders edges by flow depth of their endpoints when flow
// sorting resolved both sides, otherwise by endpoint positions, then color,
// then id. The final id key guarantees a total order.
func (s *sorter) compareEdges(a, b edgeRef) int {
	if s.flows != nil {
		da, aok := s.flows.depthOf(a.from)
		db, bok := s.flows.depthOf(b.from)
		if aok && bok {
			if c := cmpInt(da, db); c != 0 {
				return c
			}
			ta, taok := s.flows.depthOf(a.to)
			tb, tbok := s.flows.depthOf(b.to)
			if taok && tbok {
				if c := cmpInt(ta, tb); c != 0 {
					return c
				}
			}
		}
	}

	fa, fb := s.doc.byID[a.from], s.doc.byID[b.from]
	if c := cmpPosition(fa.PosY(), fa.PosX(), fb.PosY(), fb.PosX()); c != 0 {
		return c
	}
	ta, tb := s.doc.byID[a.to], s.doc.byID[b.to]
	if c := cmpPosition(ta.PosY(), ta.PosX(), tb.PosY(), tb.PosX()); c != 0 {
		return c
	}
	if s.settings.ColorSortEdges {
		if c := strings.Compare(a.ColorKey(), b.ColorKey()); c != 0 {
			return c
		}
	}
	return strings.Compare(a.id, b.id)
}

// sortStable wraps slices.SortStableFunc. The comparators are total, so
// stability is belt and braces: a zero comparison (a comparator bug) keeps
// input order instead of producing a random one.
func sortStable[T any](s []T, cmp func(a, b T) int) {
	slices.SortStableFunc(s, cmp)
}
