package pipeline

import (
	"context"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
)

// Run executes the chain to completion: every record from every source, in
// append order, folded through the transform list and delivered to every
// sink, one record at a time. The first fault from any component aborts
// the remainder of the run; there is no retry and no partial-failure
// recovery. Scoped resources acquired during the run are released before
// Run returns, on every exit path.
//
// Run reports any composition fault latched by Pipe before doing anything
// else, and a nothing-to-run fault when the chain has no sources or no
// sinks. Each call re-reads every source from scratch.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.err != nil {
		return p.err
	}
	if err := p.runnable(); err != nil {
		return err
	}

	ctx, tel := startRun(ctx, p.name)
	tel.log.Debug("run starting", logger.Fields(
		"sources", len(p.sources),
		"transforms", len(p.transforms),
		"sinks", len(p.sinks),
	))

	err := p.execute(ctx, tel)
	tel.end(ctx, err)
	return err
}

// runnable rejects chains with nothing to execute. Emptiness is not an
// ordering violation, so it surfaces here rather than at build time.
func (p *Pipeline) runnable() error {
	switch {
	case len(p.sources) == 0 && len(p.transforms) == 0 && len(p.sinks) == 0:
		return apperrors.NothingToRun("pipeline is empty")
	case len(p.sources) == 0:
		return apperrors.NothingToRun("pipeline has no sources")
	case len(p.sinks) == 0:
		return apperrors.NothingToRun("pipeline has no sinks")
	}
	return nil
}

func (p *Pipeline) execute(ctx context.Context, tel *runTelemetry) (err error) {
	// Sinks close in reverse open order on every exit path. A close
	// failure on an otherwise clean run surfaces as the run's fault:
	// a sink that cannot flush has lost data.
	var opened []Sink
	defer func() {
		for i := len(opened) - 1; i >= 0; i-- {
			c, ok := opened[i].(Closer)
			if !ok {
				continue
			}
			if cerr := c.Close(); cerr != nil {
				tel.log.Warn("sink close failed", logger.ErrorFields(describe(opened[i]), cerr))
				if err == nil {
					err = componentErr(cerr, describe(opened[i]), "")
				}
			}
		}
	}()

	for _, k := range p.sinks {
		if o, ok := k.(Opener); ok {
			if oerr := o.Open(ctx); oerr != nil {
				return componentErr(oerr, describe(k), "")
			}
		}
		opened = append(opened, k)
	}

	for _, src := range p.sources {
		if serr := p.streamSource(ctx, src, tel); serr != nil {
			return serr
		}
	}

	for _, k := range p.sinks {
		if f, ok := k.(Finalizer); ok {
			if ferr := f.Finalize(ctx); ferr != nil {
				return componentErr(ferr, describe(k), "")
			}
		}
	}
	return nil
}

// streamSource pulls one source dry: each record is folded through the
// transform stack and every survivor is broadcast to all sinks, in append
// order, before the next record is pulled.
func (p *Pipeline) streamSource(ctx context.Context, src Source, tel *runTelemetry) error {
	name := describe(src)

	iter, err := src.Open(ctx)
	if err != nil {
		return componentErr(err, name, "")
	}

	var read, emitted int64
	out := applyTransforms(&countingIter{source: iter, n: &read}, p.transforms)
	defer func() {
		if cerr := out.Close(); cerr != nil {
			tel.log.Warn("source close failed", logger.ErrorFields(name, cerr))
		}
		tel.sourceDone(ctx, name, read, emitted)
	}()

	for {
		if cerr := ctx.Err(); cerr != nil {
			return apperrors.Canceled(cerr)
		}
		item, ok, err := out.Next(ctx)
		if err != nil {
			return componentErr(err, name, "")
		}
		if !ok {
			return nil
		}
		emitted++
		for _, k := range p.sinks {
			if werr := k.Write(ctx, item); werr != nil {
				return componentErr(werr, describe(k), item.Resource)
			}
		}
		tel.wrote(int64(len(p.sinks)))
	}
}
