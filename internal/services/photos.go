package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"

	"benches/internal/feed"
	"benches/internal/models"
	"benches/internal/services/storage"
)

// ErrQueueFull возвращается, когда очередь загрузки фотографий переполнена
var ErrQueueFull = errors.New("photo queue is full")

// BenchPublisher получает события об изменении лавочек (websocket-лента)
type BenchPublisher interface {
	Publish(eventType string, b models.Bench)
}

// PhotoJob — одна фотография, ожидающая загрузки в хранилище
type PhotoJob struct {
	BenchID     uint
	ObjectName  string
	ContentType string
	Data        []byte
}

// PhotoOptions — параметры пула загрузчиков
type PhotoOptions struct {
	Workers         int
	QueueSize       int
	MaxTries        uint
	InitialInterval time.Duration
}

// PhotoUploader загружает фотографии в фоне и проставляет photo_url
type PhotoUploader struct {
	db        *gorm.DB
	store     storage.Storage
	cache     *BenchCache
	publisher BenchPublisher

	jobs     chan PhotoJob
	workers  int
	maxTries uint
	interval time.Duration

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func NewPhotoUploader(db *gorm.DB, store storage.Storage, cache *BenchCache, publisher BenchPublisher, opts PhotoOptions) *PhotoUploader {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = 3
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}
	return &PhotoUploader{
		db:        db,
		store:     store,
		cache:     cache,
		publisher: publisher,
		jobs:      make(chan PhotoJob, opts.QueueSize),
		workers:   opts.Workers,
		maxTries:  opts.MaxTries,
		interval:  opts.InitialInterval,
	}
}

// Start запускает воркеры
func (u *PhotoUploader) Start() {
	for i := 0; i < u.workers; i++ {
		u.wg.Add(1)
		go func() {
			defer u.wg.Done()
			for job := range u.jobs {
				u.process(job)
			}
		}()
	}
}

// Stop закрывает очередь и ждёт, пока воркеры обработают оставшиеся задания
func (u *PhotoUploader) Stop() {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return
	}
	u.stopped = true
	close(u.jobs)
	u.mu.Unlock()
	u.wg.Wait()
}

// Submit ставит задание в очередь не блокируясь
func (u *PhotoUploader) Submit(job PhotoJob) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.stopped {
		return ErrQueueFull
	}
	select {
	case u.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (u *PhotoUploader) process(job PhotoJob) {
	ctx := context.Background()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.interval

	_, err := backoff.Retry(ctx, func() (string, error) {
		return u.store.Upload(ctx, job.ObjectName, bytes.NewReader(job.Data), int64(len(job.Data)), job.ContentType)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(u.maxTries))
	if err != nil {
		log.Printf("[PHOTO] upload bench=%d object=%s failed: %v", job.BenchID, job.ObjectName, err)
		return
	}

	url := u.store.PublicURL(job.ObjectName)
	res := u.db.WithContext(ctx).Model(&models.Bench{}).Where("id = ?", job.BenchID).Update("photo_url", url)
	if res.Error != nil {
		log.Printf("[PHOTO] update bench=%d: %v", job.BenchID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		// лавочку удалили, пока шла загрузка
		log.Printf("[PHOTO] bench=%d gone, photo %s left orphaned", job.BenchID, job.ObjectName)
		return
	}
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			log.Printf("[PHOTO] cache invalidate: %v", err)
		}
	}
	if u.publisher != nil {
		var bench models.Bench
		if err := u.db.WithContext(ctx).First(&bench, job.BenchID).Error; err == nil {
			u.publisher.Publish(feed.EventPhoto, bench)
		}
	}
	log.Printf("[PHOTO] bench=%d photo uploaded: %s", job.BenchID, url)
}
