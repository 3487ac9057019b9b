// Package io reads and writes canvas documents as JSON files.
//
// The engine in pkg/compile performs no I/O; this package owns the
// serialization contract instead: 2-space indented JSON, UTF-8, with a
// trailing newline, and byte-faithful preservation of extension fields.
package io
