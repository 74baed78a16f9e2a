package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Handler processes one job.
type Handler func(ctx context.Context, job Job) error

// Worker drains a Source with a fixed number of goroutines.
type Worker struct {
	source   Source
	handler  Handler
	workers  int
	wait     time.Duration
	log      logrus.FieldLogger
	onResult func(job Job, err error)
}

type WorkerOption func(*Worker)

// WithResultHook is called after every handled job.
func WithResultHook(fn func(job Job, err error)) WorkerOption {
	return func(w *Worker) { w.onResult = fn }
}

// WithPollTimeout bounds each blocking dequeue so shutdown is noticed.
func WithPollTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) { w.wait = d }
}

func NewWorker(source Source, handler Handler, workers int, log logrus.FieldLogger, opts ...WorkerOption) *Worker {
	if workers < 1 {
		workers = 1
	}
	w := &Worker{
		source:  source,
		handler: handler,
		workers: workers,
		wait:    5 * time.Second,
		log:     log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is cancelled and every goroutine has returned.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.loop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (w *Worker) loop(ctx context.Context, id int) {
	log := w.log.WithField("worker", id)
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := w.source.Dequeue(ctx, w.wait)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("dequeue failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		err = w.handler(ctx, *job)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{"job_id": job.ID, "kind": job.Kind}).Error("job failed")
		} else {
			log.WithFields(logrus.Fields{"job_id": job.ID, "kind": job.Kind}).Debug("job done")
		}
		if w.onResult != nil {
			w.onResult(*job, err)
		}
	}
}
