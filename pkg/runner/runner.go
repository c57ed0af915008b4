package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Runner parses many sources concurrently with a shared Processor.
type Runner struct {
	// Processor handles per-file reading and parsing.
	Processor *Processor
}

// New creates a new Runner with the given processor.
func New(processor *Processor) *Runner {
	return &Runner{Processor: processor}
}

// Run discovers files under opts.Paths and parses them with a worker pool.
// Outcomes are returned in path order whatever order the workers finish
// in. Cancellation is checked between files, never inside a parse.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	sources, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult()
	result.Stats.FilesDiscovered = len(sources)

	if len(sources) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(sources) {
		jobs = len(sources)
	}

	workCh := make(chan Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, src := range sources {
		if outcome, ok := outcomes[src.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// RunSource parses content that did not come from a discovered file, such
// as standard input. name is used as the outcome path.
func (r *Runner) RunSource(ctx context.Context, name string, content []byte) *Result {
	result := newResult()
	result.Stats.FilesDiscovered = 1

	result.accumulate(r.Processor.ProcessSource(ctx, name, content))
	return result
}

func (r *Runner) worker(ctx context.Context, workCh <-chan Source, outCh chan<- FileOutcome) {
	for src := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.Processor.ProcessFile(ctx, src)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func newResult() *Result {
	return &Result{
		RunID: uuid.NewString(),
		Stats: newStats(),
	}
}
