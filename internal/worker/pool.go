// worker/pool.go
package worker

import "sync"

// Job is a unit of work producing a T.
type Job[T any] func() T

// Result carries a job's output back with the index it was submitted under.
type Result[T any] struct {
	Index  int
	Output T
}

// Pool runs jobs on a fixed number of goroutines. Results arrive in
// completion order; callers use Index to restore submission order.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
	once    sync.Once
}

type jobWrapper[T any] struct {
	index int
	fn    Job[T]
}

// NewPool starts workerCount workers. bufferSize bounds both queues; when it
// is smaller than the number of jobs, results must be drained while
// submitting.
func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- Result[T]{
			Index:  job.index,
			Output: job.fn(),
		}
	}
}

// Submit queues a job. It must not be called after Close.
func (p *Pool[T]) Submit(index int, fn Job[T]) {
	p.jobs <- jobWrapper[T]{index: index, fn: fn}
}

// Close stops accepting jobs. Results is closed once queued jobs finish.
func (p *Pool[T]) Close() {
	p.once.Do(func() { close(p.jobs) })
}

// Results returns the output channel.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Run executes every job and returns the outputs in submission order.
func Run[T any](workerCount int, jobs []Job[T]) []T {
	p := NewPool[T](workerCount, len(jobs))
	for i, fn := range jobs {
		p.Submit(i, fn)
	}
	p.Close()

	out := make([]T, len(jobs))
	for r := range p.Results() {
		out[r.Index] = r.Output
	}
	return out
}
