// Package pipeline provides the stage chain builder and the streaming
// executor: the core that assembles sources, transforms, and sinks into a
// validated chain and drives records through it one at a time.
//
// A chain is assembled in a fixed order (sources, then transforms, then
// sinks) and every append is validated against that order immediately, so
// an illegal pipeline shape is rejected at build time, never mid-run.
//
// Execution is lazy and pull-based: Run obtains a fresh iterator from each
// source, folds every record through the transform list (a transform may
// produce zero, one, or many records), and delivers each surviving record
// to every sink before the next record is pulled. Sinks that buffer are
// finalized once after all sources are exhausted. Scoped resources are
// released on every exit path, abort included.
//
// # Usage
//
//	p := pipeline.New("report").
//	    Pipe(src).
//	    Pipe(filter).
//	    Pipe(out)
//	if err := p.Run(ctx); err != nil {
//	    // first fault aborted the run; cleanup already happened
//	}
//
// The imperative surface is equivalent and returns the fault at the
// violating call:
//
//	p := pipeline.New("report")
//	if err := p.AddSource(src); err != nil { ... }
package pipeline
