package queue

import (
	"fmt"
	"time"

	"agromap-backend/internal/config"
	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// PeriodicTask is one cron registration
type PeriodicTask struct {
	Cronspec string
	Task     *asynq.Task
	Opts     []asynq.Option
}

// Registrar is the part of *asynq.Scheduler used to register jobs
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

// RedisOpt builds the asynq connection shared by the API client, worker and scheduler
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Host, Password: cfg.Password, DB: cfg.DB}
}

func NewScheduler(redis config.RedisConfig, jobConfig config.JobConfig, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	scheduler := asynq.NewScheduler(
		RedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: location,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// PeriodicTasks lists every scheduled job
func PeriodicTasks(jobConfig config.JobConfig) []PeriodicTask {
	return []PeriodicTask{
		// ================================================
		// Sweep orphan media (daily at 3 AM by default)
		// ================================================
		{
			Cronspec: jobConfig.SweepOrphansCron,
			Task:     asynq.NewTask(shared.TypeSweepOrphanMedia, nil),
			Opts: []asynq.Option{
				asynq.Queue(shared.QueueLow),
				asynq.MaxRetry(1),
				asynq.Timeout(10 * time.Minute),
			},
		},
	}
}

// Register adds tasks to r, stopping at the first failure
func Register(r Registrar, tasks []PeriodicTask) error {
	for _, t := range tasks {
		if _, err := r.Register(t.Cronspec, t.Task, t.Opts...); err != nil {
			return fmt.Errorf("register %s (%s): %w", t.Task.Type(), t.Cronspec, err)
		}
		log.Info().Str("task", t.Task.Type()).Str("cron", t.Cronspec).Msg("[SCHEDULER] registered")
	}
	return nil
}

func (s *Scheduler) RegisterJobs() error {
	return Register(s.scheduler, PeriodicTasks(s.jobConfig))
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
