package compile

import "github.com/matzehuels/canvasort/pkg/canvas"

// edgeDirection classifies how an edge's end decorations translate into
// flow direction.
type edgeDirection int

const (
	dirNone          edgeDirection = iota // no arrow at either end: not part of flow
	dirForward                            // fromNode -> toNode
	dirReverse                            // toNode -> fromNode
	dirBidirectional                      // arrows both ends: connectivity only
)

// classifyDirection derives an edge's flow direction from its raw end
// decorations. An absent toEnd means "arrow" (the canvas default), but only
// when fromEnd is not itself an arrow; an arrow at the from end with no
// explicit arrow at the to end reverses the edge.
//
// Bidirectional edges join the undirected connectivity graph without
// contributing a directed edge, so they bind components together but do not
// constrain depth.
func classifyDirection(e edgeRef) edgeDirection {
	fromArrow := e.FromEndValue() == canvas.EndArrow
	toArrow := e.ToEndValue() == canvas.EndArrow

	switch {
	case fromArrow && toArrow:
		return dirBidirectional
	case toArrow:
		return dirForward
	case fromArrow:
		return dirReverse
	case e.ToEndValue() == "":
		return dirForward
	default:
		return dirNone
	}
}

// flowGroup is a maximal connected component (two or more nodes) of
// directional edges within one containment scope. It carries a topological
// depth per member and a minimum anchor position used to order the group
// against its neighbors.
type flowGroup struct {
	members []string
	depth   map[string]int
	anchorX float64
	anchorY float64
}

// flowIndex resolves nodes to their flow groups across all scopes. A node
// belongs to exactly one containment scope, so one merged index is enough.
type flowIndex struct {
	group map[string]*flowGroup
}

func (f *flowIndex) groupOf(id string) *flowGroup {
	if f == nil {
		return nil
	}
	return f.group[id]
}

func (f *flowIndex) depthOf(id string) (int, bool) {
	g := f.groupOf(id)
	if g == nil {
		return 0, false
	}
	d, ok := g.depth[id]
	return d, ok
}

// analyzeFlow runs flow-topology analysis over every containment scope:
// once for the root level and once per group's direct children.
func analyzeFlow(d *document, h *hierarchy) *flowIndex {
	idx := &flowIndex{group: make(map[string]*flowGroup)}

	analyzeScope(d, h.roots, idx)
	for _, n := range d.nodes {
		if n.IsGroup() {
			analyzeScope(d, h.children[n.id], idx)
		}
	}

	return idx
}

// analyzeScope finds flow groups among the given scope members and computes
// per-member topological depth.
//
// Connectivity uses an undirected adjacency over all directional edges
// (forward, reverse, and bidirectional); only components with at least two
// members become flow groups. Depth is assigned with Kahn's algorithm over
// the directed edges: in-degree-zero members start at depth 0 and each
// visited member pushes max(child depth, own depth+1) to its successors.
// Members left unvisited by the main pass sit on an unresolved cycle and
// are placed one level below everything that did resolve.
func analyzeScope(d *document, scope []nodeRef, idx *flowIndex) {
	if len(scope) < 2 {
		return
	}
	inScope := make(map[string]bool, len(scope))
	for _, n := range scope {
		inScope[n.id] = true
	}

	undirected := make(map[string][]string)
	directed := make(map[string][]string)
	indegree := make(map[string]int)

	for _, e := range d.edges {
		if !inScope[e.from] || !inScope[e.to] {
			continue
		}
		var from, to string
		switch classifyDirection(e) {
		case dirForward:
			from, to = e.from, e.to
		case dirReverse:
			from, to = e.to, e.from
		case dirBidirectional:
			undirected[e.from] = append(undirected[e.from], e.to)
			undirected[e.to] = append(undirected[e.to], e.from)
			continue
		default:
			continue
		}
		undirected[from] = append(undirected[from], to)
		undirected[to] = append(undirected[to], from)
		directed[from] = append(directed[from], to)
		indegree[to]++
	}

	visited := make(map[string]bool)
	for _, seed := range scope {
		if visited[seed.id] || len(undirected[seed.id]) == 0 {
			continue
		}
		members := componentFrom(seed.id, undirected, visited)
		if len(members) < 2 {
			continue
		}

		g := &flowGroup{
			members: members,
			depth:   assignDepths(members, directed, indegree),
		}
		g.anchorY, g.anchorX = anchorOf(members, d)
		for _, id := range members {
			idx.group[id] = g
		}
	}
}

// componentFrom collects the undirected connected component containing
// start via breadth-first traversal. Traversal order follows edge insertion
// order, which follows document order, so the member list is reproducible.
func componentFrom(start string, adj map[string][]string, visited map[string]bool) []string {
	queue := []string{start}
	visited[start] = true
	members := make([]string, 0, 2)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		members = append(members, curr)
		for _, next := range adj[curr] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return members
}

// assignDepths runs Kahn's algorithm restricted to the component members.
// Members never reached (part of a cycle) get maxDepth+1.
func assignDepths(members []string, directed map[string][]string, indegree map[string]int) map[string]int {
	memberSet := make(map[string]bool, len(members))
	for _, id := range members {
		memberSet[id] = true
	}

	depth := make(map[string]int, len(members))
	remaining := make(map[string]int, len(members))
	queue := make([]string, 0, len(members))
	for _, id := range members {
		remaining[id] = indegree[id]
		if indegree[id] == 0 {
			depth[id] = 0
			queue = append(queue, id)
		}
	}

	maxDepth := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range directed[curr] {
			if !memberSet[next] {
				continue
			}
			if dd := depth[curr] + 1; dd > depth[next] {
				depth[next] = dd
				if dd > maxDepth {
					maxDepth = dd
				}
			}
			remaining[next]--
			if remaining[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	for _, id := range members {
		if _, ok := depth[id]; !ok {
			depth[id] = maxDepth + 1
		}
	}

	return depth
}

// anchorOf returns the minimum (y, x) position among the members.
func anchorOf(members []string, d *document) (y, x float64) {
	first := true
	for _, id := range members {
		n := d.byID[id]
		ny, nx := n.PosY(), n.PosX()
		if first || ny < y || (ny == y && nx < x) {
			y, x = ny, nx
			first = false
		}
	}
	return y, x
}
