// @title Benches API
// @version 1.0
// @description API сервиса лавочек: пользователи, лавочки, фотографии
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"benches/config"
	"benches/internal/auth"
	"benches/internal/db"
	"benches/internal/feed"
	"benches/internal/handlers"
	"benches/internal/services"
	"benches/internal/services/storage"
	"benches/internal/tasks"

	docs "benches/docs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Загружаем конфиг из .env / окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 2. Открываем GORM-подключение
	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	// 3. Redis: кеш списка лавочек и очередь писем
	var (
		rdb      *redis.Client
		cache    *services.BenchCache
		notifier auth.Notifier
	)
	if addr := cfg.RedisAddr(); addr != "" {
		rdb, err = db.NewRedis(ctx, addr, 5)
		if err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
		defer rdb.Close()
		cache = services.NewBenchCache(rdb, cfg.CachePrefix, cfg.CacheTTL)
		taskClient := asynq.NewClient(asynq.RedisClientOpt{Addr: addr})
		defer taskClient.Close()
		notifier = tasks.NewEmailNotifier(tasks.NewQueue(taskClient, cfg.TaskQueue, cfg.TaskMaxRetries))
	} else {
		log.Printf("REDIS_HOST is empty: cache and emails are disabled")
	}

	// 4. Хранилище фотографий и фоновая загрузка
	st, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	if s3, ok := st.(*storage.Service); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatalf("bucket init failed: %v", err)
		}
	}
	hub := feed.NewHub()
	uploader := services.NewPhotoUploader(gormDB, st, cache, hub, services.PhotoOptions{
		Workers:   cfg.PhotoWorkers,
		QueueSize: cfg.PhotoQueue,
	})
	uploader.Start()

	manager := auth.NewManager(gormDB, auth.Options{
		Secret:       cfg.Secret,
		ResetSecret:  cfg.SecretPass,
		VerifySecret: cfg.SecretVer,
		Lifetime:     cfg.TokenLifetime,
	}, notifier)

	docs.SwaggerInfo.BasePath = "/"

	// 5. Роутер
	r := gin.New()
	r.MaxMultipartMemory = handlers.MaxPhotoSize + 1<<20
	r.Use(gin.Logger(), handlers.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/api/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	handlers.RegisterRoutes(r, handlers.Deps{
		DB:        gormDB,
		Redis:     rdb,
		Manager:   manager,
		Transport: auth.NewCookieTransport(manager.TokenLifetime(), cfg.CookieSecure),
		Cache:     cache,
		Uploader:  uploader,
		Hub:       hub,
	})

	// 6. Запускаем сервер
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("listening on %s …", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	uploader.Stop()
}
