package async

import (
	"container/list"
	"context"
	"sync"
)

// Job is a unit of work processed by a Pool worker.
type Job interface {
	// Run executes the job.
	Run(ctx context.Context)
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc func(ctx context.Context)

// Run executes the function.
func (f JobFunc) Run(ctx context.Context) {
	f(ctx)
}

// Queue works similar to an unlimited channel, where Jobs can be
// added using Enqueue and drained by reading from the DequeueChannel.
type Queue struct {
	sync.Mutex
	list *list.List

	// enqueueSignal is added to after a successful enqueue. By having a
	// buffer size of 1, it's guaranteed that the job is processed.
	enqueueSignal  chan struct{}
	dequeueChannel chan Job
}

// NewQueue for enqueueing Jobs.
func NewQueue() *Queue {
	q := &Queue{
		list:           list.New(),
		enqueueSignal:  make(chan struct{}, 1),
		dequeueChannel: make(chan Job),
	}
	go q.run()
	return q
}

// Enqueue the Job. This method will return immediately.
func (q *Queue) Enqueue(job Job) {
	q.Lock()
	q.list.PushBack(job)
	q.Unlock()

	// Try signal a new item is available.
	select {
	case q.enqueueSignal <- struct{}{}:
	default:
	}
}

// DequeueChannel returns the channel enqueued jobs are drained on.
func (q *Queue) DequeueChannel() <-chan Job {
	return q.dequeueChannel
}

func (q *Queue) run() {
	for {
		q.Lock()

		f := q.list.Front()
		if f == nil {
			q.Unlock()

			// Wait for jobs to be enqueued before continuing.
			<-q.enqueueSignal
			continue
		}

		q.list.Remove(f)
		q.Unlock()

		q.dequeueChannel <- f.Value.(Job)
	}
}
