package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Tasks — фоновые задачи в режиме "запустил и забыл". Ошибки только
// логируются; порядок относительно последующих чтений не гарантируется.
type Tasks struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewTasks(timeout time.Duration) *Tasks {
	return &Tasks{timeout: timeout}
}

func (t *Tasks) Submit(name string, fn func(ctx context.Context) error) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			slog.Error("background task failed", "task", name, "error", err)
		}
	}()
}

// Wait дожидается завершения запущенных задач (используется при остановке)
func (t *Tasks) Wait() {
	t.wg.Wait()
}
