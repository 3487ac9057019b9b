package canvas

import (
	"math"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "abc", "abc"},
		{"padded string", "  padded  ", "padded"},
		{"whitespace only", "   ", ""},
		{"integer-valued number", float64(7), "7"},
		{"fractional number", 1.5, "1.5"},
		{"negative", float64(-3), "-3"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, ""},
		{"object", map[string]any{"k": "v"}, ""},
		{"array", []any{"a"}, ""},
		{"nan", math.NaN(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNodeAccessorDefaults(t *testing.T) {
	n := Node{ID: "n", Type: TypeText}
	if n.PosX() != 0 || n.PosY() != 0 || n.DimW() != 0 || n.DimH() != 0 {
		t.Error("absent geometry should default to 0")
	}
	if n.Area() != 0 {
		t.Errorf("Area() = %v, want 0", n.Area())
	}
	if n.ColorKey() != "" {
		t.Errorf("ColorKey() = %q, want empty for absent color", n.ColorKey())
	}
}

func TestEncloses(t *testing.T) {
	box := func(x, y, w, h float64) Node {
		return Node{X: &x, Y: &y, Width: &w, Height: &h}
	}

	outer := box(0, 0, 100, 100)

	tests := []struct {
		name  string
		inner Node
		want  bool
	}{
		{"strictly inside", box(10, 10, 20, 20), true},
		{"touching boundary", box(0, 0, 100, 100), true},
		{"flush right edge", box(80, 0, 20, 50), true},
		{"overhanging right", box(90, 0, 20, 20), false},
		{"outside", box(200, 200, 10, 10), false},
		{"partially overlapping", box(-10, 10, 30, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Encloses(&tt.inner); got != tt.want {
				t.Errorf("Encloses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentKey(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"text lowercased trimmed", Node{Type: TypeText, Text: str("  Hello World ")}, "hello world"},
		{"file basename", Node{Type: TypeFile, File: str("notes/sub/Alpha.MD")}, "alpha.md"},
		{"link full url", Node{Type: TypeLink, URL: str("https://Example.com/Path")}, "https://example.com/path"},
		{"group label", Node{Type: TypeGroup, Label: str("My Group")}, "my group"},
		{"missing content falls back to id", Node{ID: "FallBack", Type: TypeText}, "fallback"},
		{"unknown type falls back to id", Node{ID: "X", Type: "weird"}, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ContentKey(); got != tt.want {
				t.Errorf("ContentKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgeLabeled(t *testing.T) {
	empty := ""
	if (&Edge{}).Labeled() {
		t.Error("edge without label field should not be labeled")
	}
	if !(&Edge{Label: &empty}).Labeled() {
		t.Error("edge with empty-string label counts as labeled")
	}
}

func TestEdgeEndValues(t *testing.T) {
	arrow := EndArrow
	e := Edge{ToEnd: &arrow}
	if got := e.ToEndValue(); got != "arrow" {
		t.Errorf("ToEndValue() = %q, want %q", got, "arrow")
	}
	// Absent ends report empty, not a default: the direction classifier
	// needs to tell absent apart from an explicit "none".
	if got := e.FromEndValue(); got != "" {
		t.Errorf("FromEndValue() = %q, want empty", got)
	}
}
