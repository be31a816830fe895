// Package stream defines the record model shared by every pipeline stage:
// the Item carrying a payload plus its per-resource sequence number and
// origin, and the pull-based Iterator that sources produce and the
// executor drains one item at a time.
package stream
