// Package errors provides the pipeline fault taxonomy.
// Every fault carries a machine-readable code, the component that raised it,
// and the originating resource where known, so callers can act on the kind
// of failure without string matching.
package errors
