package sim

import "sync"

// workerPool runs tasks on a bounded number of goroutines. Ensemble uses it
// so large replicate counts do not fan out into one goroutine each.
type workerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	p := &workerPool{
		workers: workers,
		tasks:   make(chan func(), workers),
	}
	for i := 0; i < workers; i++ {
		go func() {
			for task := range p.tasks {
				task()
				p.wg.Done()
			}
		}()
	}
	return p
}

func (p *workerPool) submit(task func()) {
	p.wg.Add(1)
	p.tasks <- task
}

// wait blocks until every submitted task finished, then stops the workers.
func (p *workerPool) wait() {
	p.wg.Wait()
	close(p.tasks)
}
