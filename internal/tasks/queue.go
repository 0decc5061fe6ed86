// Package tasks — фоновые задачи поверх asynq (Redis) и их обработчики.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"benches/internal/utils"
)

// Enqueuer — часть *asynq.Client, которой пользуется очередь
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue ставит задачи в очередь asynq с общим лимитом повторов
type Queue struct {
	client   Enqueuer
	name     string
	maxRetry int
}

func NewQueue(client Enqueuer, name string, maxRetry int) *Queue {
	if name == "" {
		name = "emails"
	}
	if maxRetry < 0 {
		maxRetry = 0
	}
	return &Queue{client: client, name: name, maxRetry: maxRetry}
}

// Enqueue кладёт задачу в очередь и возвращает её id
func (q *Queue) Enqueue(ctx context.Context, name string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	id, err := utils.GenerateNanoID()
	if err != nil {
		return "", err
	}
	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(name, raw),
		asynq.TaskID(id),
		asynq.Queue(q.name),
		asynq.MaxRetry(q.maxRetry),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", name, err)
	}
	return info.ID, nil
}
