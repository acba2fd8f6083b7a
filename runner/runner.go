// Package runner executes independent programs concurrently, one engine per
// program.
package runner

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/nasko/vm"
	"github.com/chazu/nasko/vm/report"
)

// Job is one program to run.
type Job struct {
	Name    string
	Program []byte
}

// Result holds the outcome of a Job. Err is set when the job never produced
// a terminal event: it was cancelled before starting or the run panicked.
type Result struct {
	Name   string
	Engine *vm.Engine
	Events []vm.Event
	Report *report.Report
	Err    error
}

// Pool runs jobs on fresh engines with a bounded number of workers.
type Pool struct {
	workers   int
	opts      []vm.Option
	log       commonlog.Logger
	newEngine func() *vm.Engine
}

// New creates a pool. workers <= 0 means one worker per logical core, as
// resolved from opts.
func New(workers int, opts ...vm.Option) *Pool {
	if workers <= 0 {
		workers = vm.LogicalCores(opts...)
	}
	p := &Pool{
		workers: workers,
		opts:    opts,
		log:     commonlog.GetLogger("nasko.runner"),
	}
	p.newEngine = func() *vm.Engine { return vm.New(p.opts...) }
	return p
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every job and returns results in job order. Cancellation is
// observed between jobs only: a program that has started runs to its
// terminal event. The returned error is ctx.Err() if ctx was cancelled.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Name: job.Name, Err: err}
				return nil
			}
			results[i] = p.execute(job)
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}

// execute runs one job, recovering from panics.
func (p *Pool) execute(job Job) (result Result) {
	result.Name = job.Name
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("run of %s panicked: %v", job.Name, r)
			result.Engine = nil
			result.Events = nil
			result.Report = report.Failed(job.Name, fmt.Errorf("%v", r))
			result.Err = fmt.Errorf("%s: %v", job.Name, r)
		}
	}()

	e := p.newEngine()
	e.LoadProgram(job.Program)
	p.log.Debugf("running %s on engine %s", job.Name, e.ID())

	result.Engine = e
	result.Events = e.Run()
	result.Report = report.FromEngine(job.Name, e)
	return result
}
