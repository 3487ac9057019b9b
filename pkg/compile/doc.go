// Package compile implements the canvas compilation engine: it recompiles
// an unordered spatial canvas document into a deterministic linear ordering
// of its nodes and edges.
//
// The ordering reflects the four dimensions of meaning a canvas encodes:
//
//   - 2D position (top-to-bottom, then left-to-right)
//   - bounding-box containment (groups own their enclosed members)
//   - color (optional sort key)
//   - edge directionality (optional flow ordering by topological depth)
//
// # Pipeline
//
// Compile runs validation, containment-hierarchy construction, optional
// flow-topology analysis per containment scope, multi-key sorting, and
// hierarchical flattening. The result is always a permutation of the input
// node and edge collections; no field values change. The one exception is
// the pure-data projection (ProjectPure), which builds new, smaller node
// and edge representations for export.
//
// The engine is pure: it performs no I/O, spawns no goroutines, and never
// mutates its input. Separate documents can be compiled concurrently by
// separate callers.
package compile
