// Package canvas defines the spatial canvas document model: nodes with 2D
// positions and bounding boxes, directed edges, and open extension fields
// that round-trip through JSON untouched.
//
// The model is deliberately permissive: identifiers may arrive as strings,
// numbers, or booleans and are normalized on demand; optional geometry
// degrades to zero defaults. Validation of the stricter compiler
// preconditions lives in pkg/compile.
package canvas

import (
	"math"
	"path"
	"strconv"
	"strings"
)

// Node types.
const (
	TypeText  = "text"
	TypeFile  = "file"
	TypeLink  = "link"
	TypeGroup = "group"
)

// Edge end decorations.
const (
	EndNone  = "none"
	EndArrow = "arrow"
)

// Canvas is a spatial canvas document: an unordered collection of
// visually-positioned nodes plus directed edges between them.
//
// The order of Nodes and Edges is the only thing the compiler changes.
// Unknown top-level keys are preserved verbatim in Extra and survive a
// read → compile → write round trip untouched.
type Canvas struct {
	Nodes []Node
	Edges []Edge

	// Extra holds top-level document keys other than "nodes" and "edges".
	Extra map[string]jsonRaw
}

// Node is a single canvas element. Position and dimension fields are
// pointers so that absent fields stay absent on re-serialization; use the
// accessor methods for the documented zero defaults.
//
// ID is kept as the raw decoded JSON value (string, number, or bool) so the
// document round-trips byte-faithfully; NormID applies the normalization
// the compiler works with internally.
type Node struct {
	ID     any
	Type   string
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	Color  *string

	// Type-specific content, at most one of which is set.
	Text  *string // type "text"
	File  *string // type "file"
	URL   *string // type "link"
	Label *string // type "group"

	// From and To are only populated by the pure-data projection; they embed
	// labeled edges into their endpoint nodes.
	From []Relation
	To   []Relation

	// Extra holds node keys the model does not interpret.
	Extra map[string]jsonRaw
}

// Edge is a directed connection between two nodes. FromEnd defaults to
// "none" and ToEnd to "arrow" when absent.
type Edge struct {
	ID       any
	FromNode any
	FromSide *string
	FromEnd  *string
	ToNode   any
	ToSide   *string
	ToEnd    *string
	Color    *string
	Label    *string

	Extra map[string]jsonRaw
}

// Relation is an embedded labeled edge endpoint produced by the pure-data
// projection.
type Relation struct {
	Node  string `json:"node"`
	Label string `json:"label"`
}

// NormalizeID converts a raw identifier value to its normalized string
// form: strings are trimmed, numbers and booleans are stringified, and
// anything else (null, objects, arrays) yields the empty string.
func NormalizeID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NormID returns the node's normalized identifier.
func (n *Node) NormID() string { return NormalizeID(n.ID) }

// IsGroup reports whether the node is a group container.
func (n *Node) IsGroup() bool { return n.Type == TypeGroup }

// finiteOr returns *p when it is set and finite, otherwise def.
func finiteOr(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return def
	}
	return *p
}

// PosX returns the node's x position, defaulting to 0.
func (n *Node) PosX() float64 { return finiteOr(n.X, 0) }

// PosY returns the node's y position, defaulting to 0.
func (n *Node) PosY() float64 { return finiteOr(n.Y, 0) }

// DimW returns the node's width, defaulting to 0.
func (n *Node) DimW() float64 { return finiteOr(n.Width, 0) }

// DimH returns the node's height, defaulting to 0.
func (n *Node) DimH() float64 { return finiteOr(n.Height, 0) }

// Area returns width*height with missing dimensions treated as 0.
func (n *Node) Area() float64 { return n.DimW() * n.DimH() }

// Encloses reports whether other's bounding box lies entirely within n's.
// Boxes touching the boundary count as enclosed.
func (n *Node) Encloses(other *Node) bool {
	return other.PosX() >= n.PosX() &&
		other.PosY() >= n.PosY() &&
		other.PosX()+other.DimW() <= n.PosX()+n.DimW() &&
		other.PosY()+other.DimH() <= n.PosY()+n.DimH()
}

// ColorKey returns the sort key for the node's color. Absent colors sort
// first; otherwise the raw color string (preset digit or hex) compares
// lexicographically.
func (n *Node) ColorKey() string {
	if n.Color == nil {
		return ""
	}
	return *n.Color
}

// ContentKey returns the type-specific content string used as the final
// content-based sort tiebreaker:
//
//	text  → lowercased, trimmed text body
//	file  → lowercased basename of the file path
//	link  → lowercased full URL
//	group → lowercased label
//
// Unknown types and missing content fall back to the lowercased id.
func (n *Node) ContentKey() string {
	switch n.Type {
	case TypeText:
		if n.Text != nil {
			return strings.ToLower(strings.TrimSpace(*n.Text))
		}
	case TypeFile:
		if n.File != nil {
			return strings.ToLower(path.Base(*n.File))
		}
	case TypeLink:
		if n.URL != nil {
			return strings.ToLower(*n.URL)
		}
	case TypeGroup:
		if n.Label != nil {
			return strings.ToLower(*n.Label)
		}
	}
	return strings.ToLower(n.NormID())
}

// NormID returns the edge's normalized identifier.
func (e *Edge) NormID() string { return NormalizeID(e.ID) }

// NormFrom returns the normalized source node id.
func (e *Edge) NormFrom() string { return NormalizeID(e.FromNode) }

// NormTo returns the normalized target node id.
func (e *Edge) NormTo() string { return NormalizeID(e.ToNode) }

// Labeled reports whether the edge carries a defined label. An empty string
// label still counts as labeled; only an absent field does not.
func (e *Edge) Labeled() bool { return e.Label != nil }

// LabelValue returns the edge label, or "" when unlabeled.
func (e *Edge) LabelValue() string {
	if e.Label == nil {
		return ""
	}
	return *e.Label
}

// ColorKey returns the sort key for the edge's color; absent sorts first.
func (e *Edge) ColorKey() string {
	if e.Color == nil {
		return ""
	}
	return *e.Color
}

// endValue returns the raw end decoration, or "" when the field is absent.
// Direction classification distinguishes an absent end from an explicit
// "none", so defaults are not applied here.
func endValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FromEndValue returns the raw fromEnd decoration ("" when absent).
func (e *Edge) FromEndValue() string { return endValue(e.FromEnd) }

// ToEndValue returns the raw toEnd decoration ("" when absent).
func (e *Edge) ToEndValue() string { return endValue(e.ToEnd) }
