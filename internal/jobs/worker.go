package jobs

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Worker owns the asynq server and the scheduler that enqueues the daily
// sweep.
type Worker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cron      string
	log       *logrus.Logger
}

// NewWorker prepares a worker; nothing runs until Start.
func NewWorker(redisOpt asynq.RedisClientOpt, sweeper *Sweeper, cron string, loc *time.Location, log *logrus.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"default": 1},
		Logger:      log,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpirySweep, sweeper.HandleExpirySweep)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: loc, Logger: log})
	return &Worker{srv: srv, scheduler: scheduler, mux: mux, cron: cron, log: log}
}

// Start registers the cron entry and starts both the server and the
// scheduler in the background.
func (w *Worker) Start() error {
	task, err := NewExpirySweepTask("")
	if err != nil {
		return err
	}
	id, err := w.scheduler.Register(w.cron, task)
	if err != nil {
		return fmt.Errorf("register expiry sweep: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := w.srv.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return fmt.Errorf("start asynq server: %w", err)
	}
	w.log.WithFields(logrus.Fields{"cron": w.cron, "entry": id}).Info("expiry sweep scheduled")
	return nil
}

// Shutdown stops the scheduler and waits for running tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
}
