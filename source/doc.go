// Package source provides the built-in pipeline sources: in-memory
// strings, single files, directories, and recursive globs. File-based
// sources delegate per-file reading to the handler package, selecting
// handlers by extension unless one is forced with WithHandler.
//
// All sources stream lazily. File enumeration is resolved up front for
// deterministic order, but file contents are read one record at a time
// with at most one open handler per source.
package source
