package dispatch

import (
	"context"
	"sync"

	"integrity-gateway/internal/model"
	"integrity-gateway/internal/parser"
)

// ErrorSink receives reports about sources that were skipped during a run.
// Reporting is the collaborator's concern; the dispatcher only emits.
type ErrorSink interface {
	ReportSkip(source string, kind model.SourceKind, message string)
}

// defaultWorkers bounds per-source parse parallelism
const defaultWorkers = 4

// Dispatcher routes each source to the parser matching its kind. Unsupported
// kinds are silently omitted; parse failures are reported to the sink and the
// offending source is skipped. The run itself never aborts.
type Dispatcher struct {
	registry *parser.Registry
	sink     ErrorSink
	workers  int
}

// NewDispatcher creates a dispatcher over the given parser registry.
func NewDispatcher(registry *parser.Registry, sink ErrorSink) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		sink:     sink,
		workers:  defaultWorkers,
	}
}

// Dispatch parses all sources and returns their tables in arrival order,
// with skipped sources absent. Sources parse on a bounded worker pool;
// ordering is restored before returning.
func (d *Dispatcher) Dispatch(ctx context.Context, sources []model.Source) []*model.Table {
	results := make([]*model.Table, len(sources))

	sem := make(chan struct{}, d.workers)
	var wg sync.WaitGroup

	for i := range sources {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, src model.Source) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = d.parseSource(src)
		}(i, sources[i])
	}
	wg.Wait()

	tables := make([]*model.Table, 0, len(sources))
	for _, t := range results {
		if t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}

// parseSource parses one source, returning nil when it is skipped.
func (d *Dispatcher) parseSource(src model.Source) *model.Table {
	kind := src.Kind
	if kind == "" {
		kind = model.KindForFilename(src.Name)
	}

	// Unknown formats are ignored, not rejected.
	if !d.registry.IsSupported(kind) {
		return nil
	}

	p, err := d.registry.GetParser(kind)
	if err != nil {
		return nil
	}

	table, err := p.Parse(src.Payload, src.Name)
	if err != nil {
		if d.sink != nil {
			d.sink.ReportSkip(src.Name, kind, err.Error())
		}
		return nil
	}
	return table
}
