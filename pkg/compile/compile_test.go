package compile

import (
	"reflect"
	"testing"

	"github.com/matzehuels/canvasort/pkg/canvas"
)

func mustCompile(t *testing.T, doc canvas.Canvas, s Settings) canvas.Canvas {
	t.Helper()
	out, err := Compile(doc, s)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return out
}

func TestCompile_SpatialOrder(t *testing.T) {
	// Two nodes side by side: left one first.
	doc := canvas.Canvas{Nodes: []canvas.Node{
		textNode("B", 10, 0),
		textNode("A", 0, 0),
	}}

	out := mustCompile(t, doc, DefaultSettings())

	if got, want := nodeIDs(out), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_RowsBeforeColumns(t *testing.T) {
	doc := canvas.Canvas{Nodes: []canvas.Node{
		textNode("right-top", 500, 0),
		textNode("left-bottom", 0, 100),
		textNode("left-top", 0, 0),
	}}

	out := mustCompile(t, doc, DefaultSettings())

	want := []string{"left-top", "right-top", "left-bottom"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_OrphansPrecedeGroups(t *testing.T) {
	// The orphan sits below and right of the group but still comes first:
	// root orphans always precede root groups.
	doc := canvas.Canvas{Nodes: []canvas.Node{
		groupNode("G", 0, 0, 100, 100),
		textNode("N", 10, 10),
		textNode("O", 200, 200),
	}}

	out := mustCompile(t, doc, DefaultSettings())

	want := []string{"O", "G", "N"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_GroupSubtreeIsContiguous(t *testing.T) {
	doc := canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g2", 300, 0, 200, 200),
		textNode("g2a", 310, 10),
		groupNode("g1", 0, 0, 200, 200),
		textNode("g1a", 10, 10),
		groupNode("g1sub", 20, 20, 100, 100),
		textNode("g1subA", 30, 30),
	}}

	out := mustCompile(t, doc, DefaultSettings())

	// g1 first (leftmost), then its entire subtree, then g2's.
	want := []string{"g1", "g1a", "g1sub", "g1subA", "g2", "g2a"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_ChildrenBeforeSubgroups(t *testing.T) {
	// Inside a group, plain children come before subgroups regardless of
	// position.
	doc := canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 500, 500),
		groupNode("sub", 10, 10, 100, 100),
		textNode("subchild", 20, 20),
		textNode("child", 310, 400), // spatially after the subgroup
	}}

	out := mustCompile(t, doc, DefaultSettings())

	want := []string{"g", "child", "sub", "subchild"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_ChildrenSortSemantically(t *testing.T) {
	// Children ignore position: link type last, then content key order.
	urlV := "https://example.com/z"
	fileV := "notes/Alpha.md"
	textV := "bravo"
	doc := canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 1000, 1000),
		{ID: "link", Type: canvas.TypeLink, X: fp(10), Y: fp(10), Width: fp(50), Height: fp(50), URL: &urlV},
		{ID: "text", Type: canvas.TypeText, X: fp(500), Y: fp(900), Width: fp(50), Height: fp(50), Text: &textV},
		{ID: "file", Type: canvas.TypeFile, X: fp(900), Y: fp(500), Width: fp(50), Height: fp(50), File: &fileV},
	}}

	out := mustCompile(t, doc, DefaultSettings())

	// file "alpha.md" < text "bravo", link always last.
	want := []string{"g", "file", "text", "link"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_ColorSortToggle(t *testing.T) {
	red, blue := "1", "5"
	doc := canvas.Canvas{Nodes: []canvas.Node{
		groupNode("g", 0, 0, 100, 100),
		{ID: "b", Type: canvas.TypeText, X: fp(10), Y: fp(10), Width: fp(10), Height: fp(10), Color: &blue, Text: sp("aaa")},
		{ID: "a", Type: canvas.TypeText, X: fp(20), Y: fp(20), Width: fp(10), Height: fp(10), Color: &red, Text: sp("zzz")},
	}}

	withColor := mustCompile(t, doc, DefaultSettings())
	if got, want := nodeIDs(withColor), []string{"g", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("color on: node order = %v, want %v", got, want)
	}

	s := DefaultSettings()
	s.ColorSortNodes = false
	noColor := mustCompile(t, doc, s)
	if got, want := nodeIDs(noColor), []string{"g", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("color off: node order = %v, want %v", got, want)
	}
}

func TestCompile_FlowOrder(t *testing.T) {
	// Chain a->b->c scattered spatially; flow sort restores chain order.
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			textNode("c", 0, 0),
			textNode("a", 900, 900),
			textNode("b", 400, 100),
		},
		Edges: []canvas.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")},
	}

	s := DefaultSettings()
	s.FlowSortNodes = true
	out := mustCompile(t, doc, s)

	want := []string{"a", "b", "c"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}

	// Without flow sort the same document orders spatially.
	spatial := mustCompile(t, doc, DefaultSettings())
	want = []string{"c", "b", "a"}
	if got := nodeIDs(spatial); !reflect.DeepEqual(got, want) {
		t.Errorf("spatial node order = %v, want %v", got, want)
	}
}

func TestCompile_FlowGroupBeatsIsolatedOnTie(t *testing.T) {
	// The flow group's anchor ties with the isolated node's position; the
	// flow group goes first.
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			textNode("iso", 0, 0),
			textNode("f1", 0, 0),
			textNode("f2", 100, 0),
		},
		Edges: []canvas.Edge{edge("e", "f1", "f2")},
	}

	s := DefaultSettings()
	s.FlowSortNodes = true
	out := mustCompile(t, doc, s)

	want := []string{"f1", "f2", "iso"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_FlowGroupsOrderByAnchor(t *testing.T) {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			textNode("b1", 0, 100), textNode("b2", 50, 100),
			textNode("a1", 0, 0), textNode("a2", 50, 0),
		},
		Edges: []canvas.Edge{edge("e1", "b1", "b2"), edge("e2", "a1", "a2")},
	}

	s := DefaultSettings()
	s.FlowSortNodes = true
	out := mustCompile(t, doc, s)

	want := []string{"a1", "a2", "b1", "b2"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_SemanticOrphans(t *testing.T) {
	doc := canvas.Canvas{Nodes: []canvas.Node{
		{ID: "z", Type: canvas.TypeText, X: fp(0), Y: fp(0), Width: fp(10), Height: fp(10), Text: sp("zulu")},
		{ID: "a", Type: canvas.TypeText, X: fp(500), Y: fp(500), Width: fp(10), Height: fp(10), Text: sp("alpha")},
	}}

	s := DefaultSettings()
	s.SemanticSortOrphans = true
	out := mustCompile(t, doc, s)

	want := []string{"a", "z"}
	if got := nodeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}
}

func TestCompile_EdgeOrderSpatial(t *testing.T) {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			textNode("top", 0, 0),
			textNode("mid", 0, 100),
			textNode("bot", 0, 200),
		},
		Edges: []canvas.Edge{
			edge("e-late", "bot", "top"),
			edge("e-early", "top", "mid"),
		},
	}

	out := mustCompile(t, doc, DefaultSettings())

	// Edge from the topmost source first.
	want := []string{"e-early", "e-late"}
	if got := edgeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("edge order = %v, want %v", got, want)
	}
}

func TestCompile_EdgeOrderIDFinalTiebreak(t *testing.T) {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{textNode("a", 0, 0), textNode("b", 0, 100)},
		Edges: []canvas.Edge{
			edge("e2", "a", "b"),
			edge("e1", "a", "b"),
		},
	}

	out := mustCompile(t, doc, DefaultSettings())

	want := []string{"e1", "e2"}
	if got := edgeIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("edge order = %v, want %v", got, want)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			groupNode("g", 0, 0, 300, 300),
			textNode("x", 10, 10), textNode("y", 20, 10),
			textNode("o1", 400, 0), textNode("o2", 400, 100),
		},
		Edges: []canvas.Edge{edge("e1", "x", "y"), edge("e2", "o1", "o2")},
	}

	for _, s := range []Settings{
		DefaultSettings(),
		{FlowSortNodes: true, ColorSortNodes: true, ColorSortEdges: true},
		{SemanticSortOrphans: true},
	} {
		first := mustCompile(t, doc, s)
		for range 5 {
			again := mustCompile(t, doc, s)
			if !reflect.DeepEqual(nodeIDs(first), nodeIDs(again)) {
				t.Fatalf("settings %+v: node order not deterministic", s)
			}
			if !reflect.DeepEqual(edgeIDs(first), edgeIDs(again)) {
				t.Fatalf("settings %+v: edge order not deterministic", s)
			}
		}
	}
}

func TestCompile_PermutationInvariant(t *testing.T) {
	doc := canvas.Canvas{
		Nodes: []canvas.Node{
			groupNode("g", 0, 0, 300, 300),
			textNode("n", 10, 10),
			textNode("o", 500, 500),
		},
		Edges: []canvas.Edge{edge("e", "n", "o")},
	}

	out := mustCompile(t, doc, DefaultSettings())

	if len(out.Nodes) != len(doc.Nodes) || len(out.Edges) != len(doc.Edges) {
		t.Fatalf("cardinality changed: %d/%d nodes, %d/%d edges",
			len(out.Nodes), len(doc.Nodes), len(out.Edges), len(doc.Edges))
	}

	inIDs := map[string]bool{}
	for _, n := range doc.Nodes {
		inIDs[n.NormID()] = true
	}
	for _, n := range out.Nodes {
		if !inIDs[n.NormID()] {
			t.Errorf("output node %q not in input", n.NormID())
		}
	}

	// Field values survive untouched.
	for _, n := range out.Nodes {
		if n.NormID() == "n" {
			if n.PosX() != 10 || n.PosY() != 10 {
				t.Errorf("node n geometry changed: (%v, %v)", n.PosX(), n.PosY())
			}
		}
	}
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	doc := canvas.Canvas{Nodes: []canvas.Node{
		textNode("b", 10, 0),
		textNode("a", 0, 0),
	}}

	mustCompile(t, doc, DefaultSettings())

	if doc.Nodes[0].NormID() != "b" || doc.Nodes[1].NormID() != "a" {
		t.Error("Compile() reordered the input document")
	}
}
