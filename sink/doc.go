// Package sink provides the built-in pipeline sinks: console, file,
// in-memory buffer, and JSON document output.
//
// Sinks opt into lifecycle stages by implementing the pipeline package's
// Opener, Finalizer, and Closer interfaces. Per-record sinks (stdout,
// file) persist each record as it arrives; accumulator sinks (buffer,
// JSON) gather records and expose or write the result at the end of the
// run.
package sink
