package girder

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/segcheck/internal/parser"
	"github.com/harrison/segcheck/internal/segment"
)

// Logger receives progress from an Evaluator.
type Logger interface {
	LogSegmentResult(s segment.Summary)
	LogRunSummary(run *Run)
}

// LoadFunc loads one check file.
type LoadFunc func(path string) (*parser.Project, error)

// Evaluator loads check files and summarizes their segments with bounded
// parallelism.
type Evaluator struct {
	concurrency int
	logger      Logger
	load        LoadFunc
}

// NewEvaluator returns an Evaluator running at most concurrency summaries at
// once; zero or less means GOMAXPROCS. The logger may be nil.
func NewEvaluator(concurrency int, logger Logger) *Evaluator {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Evaluator{concurrency: concurrency, logger: logger, load: parser.Load}
}

// WithLoader returns a copy of e that loads files with load.
func (e *Evaluator) WithLoader(load LoadFunc) *Evaluator {
	c := *e
	c.load = load
	return &c
}

// Summarize evaluates every artifact in parallel. Results keep the input order.
func (e *Evaluator) Summarize(ctx context.Context, artifacts []*segment.Artifact) ([]segment.Summary, error) {
	summaries := make([]segment.Summary, len(artifacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, a := range artifacts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summaries[i] = a.Summarize()
			if e.logger != nil {
				e.logger.LogSegmentResult(summaries[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Evaluate summarizes one built project.
func (e *Evaluator) Evaluate(ctx context.Context, p *parser.Project) (*Result, error) {
	summaries, err := e.Summarize(ctx, p.Segments)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", p.Name, err)
	}
	return NewResult(p.Name, p.FilePath, summaries), nil
}

// EvaluateFiles loads and evaluates every path. A file that fails to load is
// recorded in Run.Errors and does not stop the others; only cancellation
// aborts the run.
func (e *Evaluator) EvaluateFiles(ctx context.Context, paths []string) (*Run, error) {
	run := &Run{StartedAt: time.Now()}
	projects := make([]*parser.Project, len(paths))
	loadErrs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			projects[i], loadErrs[i] = e.load(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range projects {
		if loadErrs[i] != nil {
			run.Errors = append(run.Errors, FileError{Path: paths[i], Err: loadErrs[i]})
			continue
		}
		result, err := e.Evaluate(ctx, p)
		if err != nil {
			return nil, err
		}
		run.Girders = append(run.Girders, result)
	}

	run.Duration = time.Since(run.StartedAt)
	if e.logger != nil {
		e.logger.LogRunSummary(run)
	}
	return run, nil
}
