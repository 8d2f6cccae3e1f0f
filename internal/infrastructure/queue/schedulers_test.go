package queue

import (
	"errors"
	"testing"

	"agromap-backend/internal/config"
	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRegistrar struct {
	specs []string
	types []string
	fail  bool
}

func (r *recordingRegistrar) Register(cronspec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	if r.fail {
		return "", errors.New("bad cron")
	}
	r.specs = append(r.specs, cronspec)
	r.types = append(r.types, task.Type())
	return "entry", nil
}

func TestRegister_SweepOrphans(t *testing.T) {
	r := &recordingRegistrar{}
	require.NoError(t, Register(r, PeriodicTasks(config.JobConfig{SweepOrphansCron: "0 3 * * *"})))

	assert.Equal(t, []string{"0 3 * * *"}, r.specs)
	assert.Equal(t, []string{shared.TypeSweepOrphanMedia}, r.types)
}

func TestRegister_PropagatesFailure(t *testing.T) {
	err := Register(&recordingRegistrar{fail: true}, PeriodicTasks(config.JobConfig{SweepOrphansCron: "nope"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), shared.TypeSweepOrphanMedia)
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt(config.RedisConfig{Host: "redis:6379", Password: "pw", DB: 2})
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 2, opt.DB)
}
