package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"benches/internal/models"
)

func TestBenchCache(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	cache := NewBenchCache(rdb, "test", time.Minute)
	ctx := context.Background()

	_, gen, ok, err := cache.GetPage(ctx, 10, 0)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	page := []models.Bench{{ID: 1, Name: "Bench 1"}, {ID: 2, Name: "Bench 2"}}
	if err := cache.SetPage(ctx, gen, 10, 0, page); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, ok, err := cache.GetPage(ctx, 10, 0)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[1].Name != "Bench 2" {
		t.Fatalf("unexpected page %+v", got)
	}
	if _, _, ok, _ := cache.GetPage(ctx, 5, 0); ok {
		t.Fatal("different limit must miss")
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, _, ok, _ := cache.GetPage(ctx, 10, 0); ok {
		t.Fatal("page must miss after invalidate")
	}
}

// Страница, прочитанная из БД до записи, не должна попасть в кеш после неё.
func TestBenchCacheWriteBetweenMissAndSet(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	cache := NewBenchCache(rdb, "race", time.Minute)
	ctx := context.Background()

	_, gen, ok, err := cache.GetPage(ctx, 10, 0)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	before := []models.Bench{{ID: 1, Name: "Bench 1"}}

	// тем временем создаётся лавочка
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := cache.SetPage(ctx, gen, 10, 0, before); err != nil {
		t.Fatalf("set: %v", err)
	}

	if page, _, ok, _ := cache.GetPage(ctx, 10, 0); ok {
		t.Fatalf("stale page served after write: %+v", page)
	}
}

func TestBenchCacheTTL(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	cache := NewBenchCache(rdb, "ttl", 60*time.Second)
	ctx := context.Background()

	if err := cache.SetPage(ctx, 0, 10, 0, []models.Bench{{ID: 1}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.FastForward(61 * time.Second)
	if _, _, ok, _ := cache.GetPage(ctx, 10, 0); ok {
		t.Fatal("page must expire")
	}
}
