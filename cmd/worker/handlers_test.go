package main

import (
	"testing"

	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandlers(t *testing.T) {
	mux := asynq.NewServeMux()
	newHandlerRegistry(nil, nil).RegisterHandlers(mux)

	for _, taskType := range []string{shared.TypeDeleteMediaObjects, shared.TypeSweepOrphanMedia} {
		_, pattern := mux.Handler(asynq.NewTask(taskType, nil))
		assert.Equal(t, taskType, pattern)
	}

	_, pattern := mux.Handler(asynq.NewTask("email:send_verification", nil))
	assert.Empty(t, pattern)
}

func TestQueuePriorities(t *testing.T) {
	queues := queuePriorities()

	assert.Greater(t, queues[shared.QueueDefault], queues[shared.QueueLow])
	assert.Len(t, queues, 2)
}
