package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"benches/config"
	"benches/internal/db"
	"benches/internal/services"
	"benches/internal/services/mailer"
	"benches/internal/tasks"
)

// failureRetention — сколько хранить записи о проваленных задачах
const failureRetention = 30 * 24 * time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.RedisAddr() == "" {
		log.Fatal("REDIS_HOST must be set for the worker")
	}

	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	// ждём, пока Redis станет доступен; дальше соединениями управляет asynq
	rdb, err := db.NewRedis(ctx, cfg.RedisAddr(), 10)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}
	rdb.Close()
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr()}

	worker := tasks.NewWorker(gormDB, cfg.TaskQueue, cfg.TaskRetryDelay)
	sender := mailer.New(mailer.Options{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
	})
	tasks.NewEmails(sender, cfg.BaseURL).Register(worker)

	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	sched := services.NewScheduler(time.UTC)
	if _, err := sched.ScheduleInterval(time.Minute, func() {
		info, err := inspector.GetQueueInfo(cfg.TaskQueue)
		if err != nil {
			log.Printf("[TASKS] queue info: %v", err)
			return
		}
		log.Printf("[TASKS] queue=%s pending=%d active=%d retry=%d archived=%d",
			info.Queue, info.Pending, info.Active, info.Retry, info.Archived)
	}); err != nil {
		log.Fatalf("schedule stats: %v", err)
	}
	if _, err := sched.ScheduleDaily("03:00", func() {
		n, err := worker.PurgeFailures(ctx, failureRetention)
		if err != nil {
			log.Printf("[TASKS] purge failures: %v", err)
			return
		}
		log.Printf("[TASKS] purged %d old failures", n)
	}); err != nil {
		log.Fatalf("schedule purge: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if err := worker.Run(ctx, redisOpt, cfg.TaskConcurrency); err != nil {
		log.Printf("worker: %v", err)
	}
}
