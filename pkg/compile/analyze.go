package compile

import "github.com/matzehuels/canvasort/pkg/canvas"

// Analysis is a read-only report of the derived structures the compiler
// works from: the containment forest and the flow topology. It exists for
// debugging and visualization; compilation itself never exposes it.
type Analysis struct {
	// Parents maps a normalized node id to its immediate parent group id.
	// Nodes without an enclosing group are absent.
	Parents map[string]string
	// Roots lists the normalized ids of nodes with no enclosing group,
	// in document order.
	Roots []string
	// Flows lists every detected flow group across all containment scopes.
	Flows []FlowGroupInfo
}

// FlowGroupInfo describes one flow group: a connected component of two or
// more nodes joined by directional edges within a single containment scope.
type FlowGroupInfo struct {
	// Members in traversal order.
	Members []string
	// Depth is the topological depth per member.
	Depth map[string]int
	// AnchorX, AnchorY is the minimum (y, x) position among members.
	AnchorX float64
	AnchorY float64
}

// Analyze validates the document and reports its containment hierarchy and
// flow topology. Flow analysis always runs here, regardless of any sort
// settings, since the caller is asking to see it.
func Analyze(doc canvas.Canvas) (Analysis, error) {
	d, err := validate(&doc)
	if err != nil {
		return Analysis{}, err
	}

	h := buildHierarchy(d)
	flows := analyzeFlow(d, h)

	a := Analysis{Parents: make(map[string]string, len(h.parent))}
	for id, p := range h.parent {
		a.Parents[id] = p
	}
	for _, n := range h.roots {
		a.Roots = append(a.Roots, n.id)
	}

	seen := make(map[*flowGroup]bool)
	for _, n := range d.nodes {
		g := flows.groupOf(n.id)
		if g == nil || seen[g] {
			continue
		}
		seen[g] = true
		info := FlowGroupInfo{
			Members: append([]string(nil), g.members...),
			Depth:   make(map[string]int, len(g.depth)),
			AnchorX: g.anchorX,
			AnchorY: g.anchorY,
		}
		for id, dep := range g.depth {
			info.Depth[id] = dep
		}
		a.Flows = append(a.Flows, info)
	}

	return a, nil
}
