package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"renrakuban/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestWorker_ExecutesQueuedTasks(t *testing.T) {
	worker := NewWorker(10, logger.NewLogger("error"))
	worker.Start(2)

	var executed int64
	for i := 0; i < 5; i++ {
		worker.AddNamedTask("count", func(ctx context.Context) error {
			atomic.AddInt64(&executed, 1)
			return nil
		})
	}

	worker.Stop()
	assert.Equal(t, int64(5), atomic.LoadInt64(&executed))
}

func TestWorker_StopDrainsQueue(t *testing.T) {
	worker := NewWorker(10, logger.NewLogger("error"))

	// 启动前入队，任务全部积压在队列中
	var executed int64
	for i := 0; i < 3; i++ {
		worker.AddNamedTask("cleanup", func(ctx context.Context) error {
			atomic.AddInt64(&executed, 1)
			return nil
		})
	}

	worker.Start(1)
	worker.Stop()

	// Stop必须等排队任务执行完毕，积压的清理任务不允许被丢弃
	assert.Equal(t, int64(3), atomic.LoadInt64(&executed))
}

func TestWorker_TaskFailureDoesNotBlockQueue(t *testing.T) {
	worker := NewWorker(10, logger.NewLogger("error"))
	worker.Start(1)

	var executed int64
	worker.AddNamedTask("failing", func(ctx context.Context) error {
		return errors.New("remote unavailable")
	})
	worker.AddNamedTask("next", func(ctx context.Context) error {
		atomic.AddInt64(&executed, 1)
		return nil
	})

	worker.Stop()
	assert.Equal(t, int64(1), atomic.LoadInt64(&executed))
}
