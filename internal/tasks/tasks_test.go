package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"benches/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.TaskFailure{}))
	return db
}

type enqueued struct {
	task *asynq.Task
	opts map[asynq.OptionType]any
}

// fakeClient запоминает поставленные задачи вместо Redis
type fakeClient struct {
	tasks []enqueued
	err   error
}

func (c *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	e := enqueued{task: task, opts: map[asynq.OptionType]any{}}
	for _, o := range opts {
		e.opts[o.Type()] = o.Value()
	}
	c.tasks = append(c.tasks, e)
	id, _ := e.opts[asynq.TaskIDOpt].(string)
	return &asynq.TaskInfo{ID: id, Queue: e.opts[asynq.QueueOpt].(string), Type: task.Type(), Payload: task.Payload()}, nil
}

// run выполняет последнюю поставленную задачу так, как это сделал бы сервер asynq
func (c *fakeClient) run(t *testing.T, w *Worker) error {
	t.Helper()
	require.NotEmpty(t, c.tasks)
	last := c.tasks[len(c.tasks)-1].task
	return w.ProcessTask(context.Background(), asynq.NewTask(last.Type(), last.Payload()))
}

type sentMail struct{ to, subject, body string }

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to, subject, body})
	return nil
}

func TestEnqueueOptions(t *testing.T) {
	client := &fakeClient{}
	q := NewQueue(client, "emails", 3)

	id, err := q.Enqueue(context.Background(), TaskSendVerificationEmail, EmailPayload{Email: "u@example.com", Token: "t"})
	require.NoError(t, err)
	require.Len(t, id, 21)

	require.Len(t, client.tasks, 1)
	e := client.tasks[0]
	require.Equal(t, TaskSendVerificationEmail, e.task.Type())
	require.JSONEq(t, `{"email":"u@example.com","token":"t"}`, string(e.task.Payload()))
	require.Equal(t, "emails", e.opts[asynq.QueueOpt])
	require.Equal(t, 3, e.opts[asynq.MaxRetryOpt])
	require.Equal(t, id, e.opts[asynq.TaskIDOpt])
}

func TestEnqueueError(t *testing.T) {
	q := NewQueue(&fakeClient{err: errors.New("redis down")}, "emails", 3)
	_, err := q.Enqueue(context.Background(), "x", nil)
	require.ErrorContains(t, err, "redis down")
}

func TestEnqueueToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	client := asynq.NewClient(opt)
	defer client.Close()
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	ctx := context.Background()
	id, err := NewQueue(client, "emails", 3).Enqueue(ctx, TaskSendResetPasswordEmail, EmailPayload{Email: "r@example.com", Token: "abc"})
	require.NoError(t, err)

	pending, err := inspector.ListPendingTasks("emails")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, id, pending[0].ID)
	require.Equal(t, TaskSendResetPasswordEmail, pending[0].Type)
	require.Equal(t, 3, pending[0].MaxRetry)

	sender := &fakeSender{}
	w := NewWorker(nil, "emails", time.Second)
	NewEmails(sender, "https://benches.example").Register(w)
	require.NoError(t, w.ProcessTask(ctx, asynq.NewTask(pending[0].Type, pending[0].Payload)))
	require.Len(t, sender.sent, 1)
	require.Equal(t, "r@example.com", sender.sent[0].to)
}

func TestVerificationEmail(t *testing.T) {
	client := &fakeClient{}
	sender := &fakeSender{}
	w := NewWorker(setupDB(t), "emails", time.Second)
	NewEmails(sender, "https://benches.example").Register(w)

	n := NewEmailNotifier(NewQueue(client, "emails", 3))
	require.NoError(t, n.VerificationRequested(context.Background(), models.User{Email: "u@example.com"}, "tok.en"))
	require.NoError(t, client.run(t, w))

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	require.Equal(t, "u@example.com", m.to)
	require.Equal(t, "Подтвердите регистрацию", m.subject)
	require.Contains(t, m.body, `href="https://benches.example/auth/verify?token=tok.en"`)
}

func TestResetEmail(t *testing.T) {
	client := &fakeClient{}
	sender := &fakeSender{}
	w := NewWorker(setupDB(t), "emails", time.Second)
	NewEmails(sender, "https://benches.example").Register(w)

	require.NoError(t, NewEmailNotifier(NewQueue(client, "emails", 3)).PasswordResetRequested(context.Background(), models.User{Email: "u@example.com"}, "abc"))
	require.NoError(t, client.run(t, w))

	require.Len(t, sender.sent, 1)
	require.Equal(t, "Сброс пароля", sender.sent[0].subject)
	require.True(t, strings.Contains(sender.sent[0].body, "https://benches.example/reset-password?token=abc"))
}

func TestSendErrorIsReturnedForRetry(t *testing.T) {
	client := &fakeClient{}
	w := NewWorker(setupDB(t), "emails", time.Second)
	NewEmails(&fakeSender{err: errors.New("smtp down")}, "https://benches.example").Register(w)

	require.NoError(t, NewEmailNotifier(NewQueue(client, "emails", 3)).VerificationRequested(context.Background(), models.User{Email: "u@example.com"}, "t"))
	err := client.run(t, w)
	require.ErrorContains(t, err, "smtp down")
	require.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestFailureStoredAfterLastRetry(t *testing.T) {
	db := setupDB(t)
	w := NewWorker(db, "emails", 20*time.Second)
	ctx := context.Background()
	payload := []byte(`{"email":"u@example.com"}`)
	smtpErr := errors.New("smtp down")

	// первая попытка и три повтора; сохраняется только последняя
	for retried := 0; retried <= 3; retried++ {
		w.recordFailure(ctx, "task-1", "flaky", payload, retried, 3, smtpErr)
		var count int64
		db.Model(&models.TaskFailure{}).Count(&count)
		if retried < 3 {
			require.Zero(t, count, "retry %d must not be stored", retried)
		}
	}

	var failures []models.TaskFailure
	require.NoError(t, db.Find(&failures).Error)
	require.Len(t, failures, 1)
	require.Equal(t, "task-1", failures[0].TaskID)
	require.Equal(t, "flaky", failures[0].Name)
	require.Equal(t, 4, failures[0].Attempts)
	require.Equal(t, "smtp down", failures[0].LastError)
	require.JSONEq(t, `{"email":"u@example.com"}`, string(failures[0].Payload))
}

func TestUnknownTaskIsNotRetried(t *testing.T) {
	db := setupDB(t)
	w := NewWorker(db, "emails", time.Second)
	ctx := context.Background()

	err := w.ProcessTask(ctx, asynq.NewTask("nope", nil))
	require.True(t, errors.Is(err, asynq.SkipRetry))

	w.recordFailure(ctx, "task-2", "nope", nil, 0, 3, err)
	var f models.TaskFailure
	require.NoError(t, db.First(&f).Error)
	require.Equal(t, 1, f.Attempts)
	require.JSONEq(t, `null`, string(f.Payload))
}

func TestWorkerConfig(t *testing.T) {
	w := NewWorker(nil, "emails", 20*time.Second)
	cfg := w.Config(4)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, map[string]int{"emails": 1}, cfg.Queues)
	for n := 1; n <= 3; n++ {
		require.Equal(t, 20*time.Second, cfg.RetryDelayFunc(n, errors.New("x"), asynq.NewTask("t", nil)))
	}
	require.NotNil(t, cfg.ErrorHandler)
}

func TestPurgeFailures(t *testing.T) {
	db := setupDB(t)
	w := NewWorker(db, "emails", time.Second)

	old := models.TaskFailure{TaskID: "a", Name: "x", Payload: []byte("{}"), CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := models.TaskFailure{TaskID: "b", Name: "x", Payload: []byte("{}")}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	n, err := w.PurgeFailures(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
