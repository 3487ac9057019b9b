package compile

import (
	"testing"

	"github.com/matzehuels/canvasort/pkg/canvas"
)

func mustValidate(t *testing.T, doc canvas.Canvas) *document {
	t.Helper()
	d, err := validate(&doc)
	if err != nil {
		t.Fatalf("validate() error = %v", err)
	}
	return d
}

func TestBuildHierarchy_SimpleContainment(t *testing.T) {
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 100, 100),
		textNode("inside", 10, 10),
		textNode("outside", 200, 200),
	}})

	h := buildHierarchy(d)

	if h.parent["inside"] != "g" {
		t.Errorf("parent[inside] = %q, want g", h.parent["inside"])
	}
	if _, ok := h.parent["outside"]; ok {
		t.Error("outside should have no parent")
	}
	if _, ok := h.parent["g"]; ok {
		t.Error("g should be a root")
	}
	if len(h.roots) != 2 {
		t.Errorf("roots = %d, want 2", len(h.roots))
	}
}

func TestBuildHierarchy_SmallestAreaWins(t *testing.T) {
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		groupNode("big", 0, 0, 1000, 1000),
		groupNode("small", 0, 0, 100, 100),
		textNode("n", 10, 10),
	}})

	h := buildHierarchy(d)

	if h.parent["n"] != "small" {
		t.Errorf("parent[n] = %q, want small", h.parent["n"])
	}
	if h.parent["small"] != "big" {
		t.Errorf("parent[small] = %q, want big (nested groups)", h.parent["small"])
	}
}

func TestBuildHierarchy_BoundaryTouchCounts(t *testing.T) {
	// A node exactly filling the group is still enclosed.
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 50, 50),
		textNode("n", 0, 0), // 50x50 via helper
	}})

	h := buildHierarchy(d)

	if h.parent["n"] != "g" {
		t.Errorf("parent[n] = %q, want g", h.parent["n"])
	}
}

func TestBuildHierarchy_EqualAreaTieBreaksByID(t *testing.T) {
	// Two overlapping same-area groups both enclose n; the lower id wins
	// no matter the input order.
	nodes := []canvas.Node{
		groupNode("beta", 0, 0, 100, 100),
		groupNode("alpha", 0, 0, 100, 100),
		textNode("n", 10, 10),
	}

	for _, order := range [][]canvas.Node{
		nodes,
		{nodes[1], nodes[0], nodes[2]},
	} {
		d := mustValidate(t, canvas.Canvas{Nodes: order})
		h := buildHierarchy(d)
		if h.parent["n"] != "alpha" {
			t.Errorf("parent[n] = %q, want alpha", h.parent["n"])
		}
	}
}

func TestBuildHierarchy_IdenticalBoxesStayForest(t *testing.T) {
	// Identical boxes enclose each other; the result must not contain a
	// parent cycle.
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		groupNode("a", 0, 0, 100, 100),
		groupNode("b", 0, 0, 100, 100),
	}})

	h := buildHierarchy(d)

	_, aHasParent := h.parent["a"]
	_, bHasParent := h.parent["b"]
	if aHasParent && bHasParent {
		t.Fatalf("parent cycle: parent[a]=%q parent[b]=%q", h.parent["a"], h.parent["b"])
	}
	// Exactly one containment direction survives.
	if !aHasParent && !bHasParent {
		t.Error("expected one of the identical groups to nest under the other")
	}
}

func TestBuildHierarchy_GroupNotOwnParent(t *testing.T) {
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 100, 100),
	}})

	h := buildHierarchy(d)

	if p, ok := h.parent["g"]; ok {
		t.Errorf("parent[g] = %q, want none", p)
	}
}

func TestBuildHierarchy_MissingDimensionsDefaultZero(t *testing.T) {
	// A group without width/height has zero area and encloses nothing but
	// zero-size nodes at its own position.
	g := canvas.Node{ID: "g", Type: canvas.TypeGroup, X: fp(0), Y: fp(0)}
	d := mustValidate(t, canvas.Canvas{Nodes: []canvas.Node{
		g,
		textNode("n", 0, 0),
	}})

	h := buildHierarchy(d)

	if _, ok := h.parent["n"]; ok {
		t.Error("a zero-area group must not enclose a 50x50 node")
	}
}
