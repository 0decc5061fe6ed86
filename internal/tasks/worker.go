package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"benches/internal/models"
)

// HandlerFunc выполняет задачу с данным payload
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// Worker обрабатывает задачи одной очереди asynq. Повторы с фиксированной
// задержкой выполняет asynq, задачи после последней попытки сохраняются в task_failures.
type Worker struct {
	db         *gorm.DB
	mux        *asynq.ServeMux
	queue      string
	retryDelay time.Duration
	now        func() time.Time
}

func NewWorker(db *gorm.DB, queue string, retryDelay time.Duration) *Worker {
	if queue == "" {
		queue = "emails"
	}
	if retryDelay <= 0 {
		retryDelay = 20 * time.Second
	}
	return &Worker{
		db:         db,
		mux:        asynq.NewServeMux(),
		queue:      queue,
		retryDelay: retryDelay,
		now:        time.Now,
	}
}

// Register связывает имя задачи с обработчиком
func (w *Worker) Register(name string, h HandlerFunc) {
	w.mux.HandleFunc(name, func(ctx context.Context, t *asynq.Task) error {
		return h(ctx, t.Payload())
	})
}

// ProcessTask реализует asynq.Handler. Неизвестные задачи не повторяются.
func (w *Worker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if _, pattern := w.mux.Handler(t); pattern == "" {
		return fmt.Errorf("unknown task %q: %w", t.Type(), asynq.SkipRetry)
	}
	return w.mux.ProcessTask(ctx, t)
}

// Config — настройки сервера asynq для этого воркера
func (w *Worker) Config(concurrency int) asynq.Config {
	if concurrency <= 0 {
		concurrency = 1
	}
	return asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{w.queue: 1},
		RetryDelayFunc: func(int, error, *asynq.Task) time.Duration {
			return w.retryDelay
		},
		ErrorHandler:    asynq.ErrorHandlerFunc(w.handleError),
		ShutdownTimeout: 10 * time.Second,
	}
}

// Run обрабатывает задачи до отмены контекста. Незавершённые задачи
// asynq при остановке возвращает в очередь.
func (w *Worker) Run(ctx context.Context, redisOpt asynq.RedisConnOpt, concurrency int) error {
	srv := asynq.NewServer(redisOpt, w.Config(concurrency))
	if err := srv.Start(w); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	log.Printf("[TASKS] worker started, queue=%s", w.queue)
	<-ctx.Done()
	srv.Shutdown()
	log.Printf("[TASKS] worker stopped")
	return nil
}

func (w *Worker) handleError(ctx context.Context, t *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	id, _ := asynq.GetTaskID(ctx)
	w.recordFailure(ctx, id, t.Type(), t.Payload(), retried, maxRetry, err)
}

// recordFailure логирует неудачную попытку; после последней сохраняет TaskFailure
func (w *Worker) recordFailure(ctx context.Context, id, name string, payload []byte, retried, maxRetry int, err error) {
	attempt := retried + 1
	if retried < maxRetry && !errors.Is(err, asynq.SkipRetry) {
		log.Printf("[TASKS] %s %s failed (attempt %d), retry in %s: %v", name, id, attempt, w.retryDelay, err)
		return
	}
	log.Printf("[TASKS] max retries exceeded for %s %s: %v", name, id, err)
	if w.db == nil {
		return
	}
	if len(payload) == 0 {
		payload = []byte("null")
	}
	f := models.TaskFailure{
		TaskID:    id,
		Name:      name,
		Payload:   datatypes.JSON(payload),
		Attempts:  attempt,
		LastError: err.Error(),
	}
	// контекст задачи может быть уже отменён по дедлайну
	if err := w.db.WithContext(context.WithoutCancel(ctx)).Create(&f).Error; err != nil {
		log.Printf("[TASKS] store failure %s: %v", id, err)
	}
}

// PurgeFailures удаляет записи о проваленных задачах старше olderThan
func (w *Worker) PurgeFailures(ctx context.Context, olderThan time.Duration) (int64, error) {
	res := w.db.WithContext(ctx).Where("created_at < ?", w.now().Add(-olderThan)).Delete(&models.TaskFailure{})
	return res.RowsAffected, res.Error
}
