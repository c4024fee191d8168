package docrun

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/docengine/pkg/docconfig"
)

// Job processes a single file and returns a status message on success.
type Job func(ctx context.Context, path string, cfg *docconfig.Config) (string, error)

// Runner orchestrates multi-file processing using a Job.
type Runner struct {
	job Job
}

// New creates a new Runner that dispatches discovered files to job.
func New(job Job) *Runner {
	return &Runner{job: job}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats, and respects context cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Config)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *docconfig.Config) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		message, err := r.job(ctx, path, cfg)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Message = message
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
