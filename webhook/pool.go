package webhook

import (
	"context"
	"sync"

	"formlink/formlink_go_form_service/pkg/logger"
)

type Task func(ctx context.Context)

// Pool is a bounded worker pool for detached webhook processing. The HTTP
// handler's contract is enqueue-and-acknowledge: nothing submitted here ever
// reports back to a caller, failures only reach the log.
type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup
	log   logger.LoggerI
}

func NewPool(workers, queueSize int, log logger.LoggerI) *Pool {
	if workers <= 0 {
		workers = 1
	}

	if queueSize <= 0 {
		queueSize = 1
	}

	p := &Pool{
		tasks: make(chan Task, queueSize),
		log:   log,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues a task without blocking. When the queue is full the task is
// dropped: the upstream at-least-once redelivery is the only retry mechanism,
// and blocking here would stall the request path.
func (p *Pool) Submit(task Task) bool {
	select {
	case p.tasks <- task:
		return true
	default:
		p.log.Warn("webhook queue full, dropping task")
		return false
	}
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("webhook task panicked", logger.Any("panic", r))
		}
	}()

	task(context.Background())
}
