package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// jsonRaw aliases json.RawMessage so extension fields round-trip verbatim.
type jsonRaw = json.RawMessage

// objBuilder assembles a JSON object with a fixed key order. The compiler's
// whole point is diff-stable output, so key order must not depend on map
// iteration.
type objBuilder struct {
	buf bytes.Buffer
	n   int
	err error
}

func (b *objBuilder) raw(key string, raw jsonRaw) {
	if b.err != nil || raw == nil {
		return
	}
	if b.n == 0 {
		b.buf.WriteByte('{')
	} else {
		b.buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		b.err = err
		return
	}
	b.buf.Write(k)
	b.buf.WriteByte(':')
	b.buf.Write(raw)
	b.n++
}

func (b *objBuilder) field(key string, v any) {
	if b.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		b.err = err
		return
	}
	b.raw(key, raw)
}

// extras appends extension fields in sorted key order, skipping any key the
// typed model already owns.
func (b *objBuilder) extras(m map[string]jsonRaw, owned map[string]bool) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if owned[k] {
			continue
		}
		b.raw(k, m[k])
	}
}

func (b *objBuilder) bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.n == 0 {
		return []byte("{}"), nil
	}
	b.buf.WriteByte('}')
	return b.buf.Bytes(), nil
}

var nodeKeys = map[string]bool{
	"id": true, "type": true, "x": true, "y": true,
	"width": true, "height": true, "color": true,
	"text": true, "file": true, "url": true, "label": true,
	"from": true, "to": true,
}

var edgeKeys = map[string]bool{
	"id": true, "fromNode": true, "fromSide": true, "fromEnd": true,
	"toNode": true, "toSide": true, "toEnd": true,
	"color": true, "label": true,
}

var canvasKeys = map[string]bool{"nodes": true, "edges": true}

// MarshalJSON emits the node with a canonical key order: identity first,
// geometry, color, content, projection arrays, then extension fields sorted
// by key.
func (n Node) MarshalJSON() ([]byte, error) {
	var b objBuilder
	if n.ID != nil {
		b.field("id", n.ID)
	}
	if n.Type != "" {
		b.field("type", n.Type)
	}
	if n.X != nil {
		b.field("x", *n.X)
	}
	if n.Y != nil {
		b.field("y", *n.Y)
	}
	if n.Width != nil {
		b.field("width", *n.Width)
	}
	if n.Height != nil {
		b.field("height", *n.Height)
	}
	if n.Color != nil {
		b.field("color", *n.Color)
	}
	if n.Text != nil {
		b.field("text", *n.Text)
	}
	if n.File != nil {
		b.field("file", *n.File)
	}
	if n.URL != nil {
		b.field("url", *n.URL)
	}
	if n.Label != nil {
		b.field("label", *n.Label)
	}
	if len(n.From) > 0 {
		b.field("from", n.From)
	}
	if len(n.To) > 0 {
		b.field("to", n.To)
	}
	b.extras(n.Extra, nodeKeys)
	return b.bytes()
}

// UnmarshalJSON decodes a node, keeping unknown keys verbatim in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	var m map[string]jsonRaw
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("node: %w", err)
	}
	*n = Node{}
	for key, raw := range m {
		switch key {
		case "id":
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("node id: %w", err)
			}
			n.ID = v
		case "type":
			decodeOpt(raw, &n.Type)
		case "x":
			decodeOptPtr(raw, &n.X)
		case "y":
			decodeOptPtr(raw, &n.Y)
		case "width":
			decodeOptPtr(raw, &n.Width)
		case "height":
			decodeOptPtr(raw, &n.Height)
		case "color":
			decodeOptPtr(raw, &n.Color)
		case "text":
			decodeOptPtr(raw, &n.Text)
		case "file":
			decodeOptPtr(raw, &n.File)
		case "url":
			decodeOptPtr(raw, &n.URL)
		case "label":
			decodeOptPtr(raw, &n.Label)
		case "from":
			decodeOpt(raw, &n.From)
		case "to":
			decodeOpt(raw, &n.To)
		default:
			if n.Extra == nil {
				n.Extra = make(map[string]jsonRaw)
			}
			n.Extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON emits the edge with a canonical key order.
func (e Edge) MarshalJSON() ([]byte, error) {
	var b objBuilder
	if e.ID != nil {
		b.field("id", e.ID)
	}
	if e.FromNode != nil {
		b.field("fromNode", e.FromNode)
	}
	if e.FromSide != nil {
		b.field("fromSide", *e.FromSide)
	}
	if e.FromEnd != nil {
		b.field("fromEnd", *e.FromEnd)
	}
	if e.ToNode != nil {
		b.field("toNode", e.ToNode)
	}
	if e.ToSide != nil {
		b.field("toSide", *e.ToSide)
	}
	if e.ToEnd != nil {
		b.field("toEnd", *e.ToEnd)
	}
	if e.Color != nil {
		b.field("color", *e.Color)
	}
	if e.Label != nil {
		b.field("label", *e.Label)
	}
	b.extras(e.Extra, edgeKeys)
	return b.bytes()
}

// UnmarshalJSON decodes an edge, keeping unknown keys verbatim in Extra.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var m map[string]jsonRaw
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("edge: %w", err)
	}
	*e = Edge{}
	for key, raw := range m {
		switch key {
		case "id", "fromNode", "toNode":
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("edge %s: %w", key, err)
			}
			switch key {
			case "id":
				e.ID = v
			case "fromNode":
				e.FromNode = v
			case "toNode":
				e.ToNode = v
			}
		case "fromSide":
			decodeOptPtr(raw, &e.FromSide)
		case "fromEnd":
			decodeOptPtr(raw, &e.FromEnd)
		case "toSide":
			decodeOptPtr(raw, &e.ToSide)
		case "toEnd":
			decodeOptPtr(raw, &e.ToEnd)
		case "color":
			decodeOptPtr(raw, &e.Color)
		case "label":
			decodeOptPtr(raw, &e.Label)
		default:
			if e.Extra == nil {
				e.Extra = make(map[string]jsonRaw)
			}
			e.Extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON emits the document as {"nodes": [...], "edges": [...]} with
// any preserved extension keys after them, sorted.
func (c Canvas) MarshalJSON() ([]byte, error) {
	var b objBuilder
	nodes := c.Nodes
	if nodes == nil {
		nodes = []Node{}
	}
	edges := c.Edges
	if edges == nil {
		edges = []Edge{}
	}
	b.field("nodes", nodes)
	b.field("edges", edges)
	b.extras(c.Extra, canvasKeys)
	return b.bytes()
}

// UnmarshalJSON decodes a document, keeping unknown top-level keys in Extra.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	var m map[string]jsonRaw
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	*c = Canvas{}
	for key, raw := range m {
		switch key {
		case "nodes":
			if err := json.Unmarshal(raw, &c.Nodes); err != nil {
				return fmt.Errorf("nodes: %w", err)
			}
		case "edges":
			if err := json.Unmarshal(raw, &c.Edges); err != nil {
				return fmt.Errorf("edges: %w", err)
			}
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]jsonRaw)
			}
			c.Extra[key] = raw
		}
	}
	return nil
}

// decodeOpt decodes raw into v, ignoring type mismatches. Optional fields
// degrade to their zero defaults rather than failing the whole document.
func decodeOpt[T any](raw jsonRaw, v *T) {
	_ = json.Unmarshal(raw, v)
}

// decodeOptPtr decodes raw into a fresh value and points *p at it. JSON
// null and mismatched types leave *p nil, which the accessors treat as
// absent.
func decodeOptPtr[T any](raw jsonRaw, p **T) {
	var v T
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*p = &v
}
