package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-docpdf/internal/source"
)

// BuildResult holds the outcome of a single build.
type BuildResult struct {
	InputPath string
	Output    string
	Pages     int
	Err       error
	Duration  time.Duration
}

// batchError reports the failed builds of a batch. errors.Is and errors.As
// see every underlying error.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d build(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// buildBatch processes files concurrently with at most workers goroutines.
// An Assembler is safe for concurrent use, so workers share params.
func buildBatch(ctx context.Context, workers int, files []FileToBuild, params *buildParams) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: files[idx].InputPath,
						Output:    files[idx].Target.String(),
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildFile(ctx, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile loads, assembles and delivers one document.
func buildFile(ctx context.Context, f FileToBuild, params *buildParams) BuildResult {
	start := time.Now()
	result := BuildResult{
		InputPath: f.InputPath,
		Output:    f.Target.String(),
	}
	finish := func(pages int, err error) BuildResult {
		result.Pages = pages
		result.Err = err
		result.Duration = time.Since(start)
		logBuild(params.logger, result)
		return result
	}

	content, err := source.Load(ctx, f.InputPath)
	if err != nil {
		return finish(0, err)
	}

	doc, err := params.newDocument(content)
	if err != nil {
		return finish(0, err)
	}

	if params.dryRun {
		l, err := params.asm.Layout(ctx, doc)
		if err != nil {
			return finish(0, err)
		}
		return finish(l.PageCount(), nil)
	}

	res, err := params.sink.Deliver(ctx, doc, f.Target)
	if err != nil {
		return finish(0, err)
	}
	return finish(res.Pages, nil)
}

func logBuild(logger *zap.Logger, r BuildResult) {
	fields := []zap.Field{
		zap.String("input", r.InputPath),
		zap.String("output", r.Output),
		zap.Int("pages", r.Pages),
		zap.Duration("duration", r.Duration),
	}
	if r.Err != nil {
		logger.Debug("build failed", append(fields, zap.Error(r.Err))...)
		return
	}
	logger.Info("document built", fields...)
}

// ResultSummary holds the count of succeeded and failed builds.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results and returns a *batchError when any
// build failed.
func printResults(results []BuildResult, quiet, verbose, dryRun bool, env *Environment) error {
	summary := countResults(results)
	var errs []error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			errs = append(errs, r.Err)
			continue
		}

		if quiet {
			continue
		}

		switch {
		case dryRun:
			fmt.Fprintf(env.Stdout, "%s: %d page(s), would write %s\n", r.InputPath, r.Pages, r.Output)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.Output, r.Pages, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if len(errs) == 0 {
		return nil
	}
	return &batchError{failed: summary.Failed, total: len(results), errs: errs}
}
