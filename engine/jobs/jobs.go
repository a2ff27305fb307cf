// Package jobs runs independent tasks on a fixed pool of workers.
package jobs

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/quadrant/engine/core"
)

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrShutdown            = errors.New("job system is shut down")
)

// JobTask describes one unit of work. OnComplete or OnFailure runs on the
// worker right after Run returns.
type JobTask struct {
	Name       string
	Run        func() error
	OnComplete func()
	OnFailure  func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mutex  sync.Mutex
	closed bool

	failMutex sync.Mutex
	failures  []error
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.execute(job)
			}
		}()
	}
}

func (js *JobSystem) execute(job JobTask) {
	if err := job.Run(); err != nil {
		core.LogError("job %s failed: %s", job.Name, err)
		js.failMutex.Lock()
		js.failures = append(js.failures, err)
		js.failMutex.Unlock()
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

// Submit queues a job, blocking while the queue is full.
func (js *JobSystem) Submit(jt JobTask) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()
	if js.closed {
		return ErrShutdown
	}
	js.jobQueue <- jt
	return nil
}

// Shutdown waits for every queued job and returns their joined errors.
// Calling it again returns ErrShutdown.
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return ErrShutdown
	}
	js.closed = true
	close(js.jobQueue)
	js.mutex.Unlock()

	js.wg.Wait()

	js.failMutex.Lock()
	defer js.failMutex.Unlock()
	return errors.Join(js.failures...)
}
