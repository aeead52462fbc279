package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker long running worker, returns when ctx is done
type Worker interface {
	Run(ctx context.Context) error
}

// IJob cron job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob runs OnWork on a cron schedule, a tick is skipped while the previous run is still working
type BaseJob struct {
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// NewBaseJob schedule onWork with a standard cron spec or descriptor such as "@every 30s"
func NewBaseJob(location *time.Location, spec string, onWork OnWork) (*BaseJob, error) {
	job := &BaseJob{
		Cron:   cron.New(cron.WithLocation(location)),
		OnWork: onWork,
	}

	if _, err := job.Cron.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	return job, nil
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

// Stop stop scheduling and wait for the running job
func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	_ = job.OnWork()
}

// IsRunning OnWork in progress
func (job *BaseJob) IsRunning() bool {
	return atomic.LoadInt32(&job.running) == 1
}

// RunJob start job, block until ctx is done, then stop it
func RunJob(ctx context.Context, job IJob) error {
	if err := job.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return job.Stop()
}
