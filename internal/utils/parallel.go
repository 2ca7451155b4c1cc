package utils

import "sync"

// Task is a unit of work whose result is gathered by Gather.
type Task func() (interface{}, error)

// Gather runs the tasks concurrently and returns their results and errors in
// task order.
func Gather(tasks ...Task) ([]interface{}, []error) {
	var wg sync.WaitGroup
	results := make([]interface{}, len(tasks))
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, t Task) {
			defer wg.Done()
			results[i], errs[i] = t()
		}(i, task)
	}
	wg.Wait()
	return results, errs
}

// WorkerPool runs fire-and-forget jobs on a fixed set of workers. Used for
// cleanup work (stale storage objects) that should not block a request.
type WorkerPool struct {
	tasks chan func()
	wg    sync.WaitGroup
}

func NewWorkerPool(workers int) *WorkerPool {
	pool := &WorkerPool{tasks: make(chan func(), workers*2)}
	for i := 0; i < workers; i++ {
		go pool.worker()
	}
	return pool
}

func (p *WorkerPool) worker() {
	for task := range p.tasks {
		task()
		p.wg.Done()
	}
}

// Submit queues a job for execution.
func (p *WorkerPool) Submit(task func()) {
	p.wg.Add(1)
	p.tasks <- task
}

// Wait blocks until all submitted jobs have run.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Close waits for pending jobs and stops the workers.
func (p *WorkerPool) Close() {
	p.wg.Wait()
	close(p.tasks)
}
