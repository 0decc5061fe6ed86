package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"benches/internal/models"
)

// BenchCache кеширует страницы списка лавочек. Любая запись увеличивает
// номер поколения, поэтому старые страницы больше не читаются и истекают по TTL.
type BenchCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewBenchCache(client *redis.Client, prefix string, ttl time.Duration) *BenchCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BenchCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *BenchCache) generationKey() string {
	return c.prefix + ":benches:gen"
}

func (c *BenchCache) pageKey(gen int64, limit, offset int) string {
	return fmt.Sprintf("%s:benches:v%d:%d:%d", c.prefix, gen, limit, offset)
}

func (c *BenchCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// GetPage возвращает страницу из кеша; ok=false при промахе.
// gen — поколение, под которым нужно сохранять страницу, прочитанную из БД после промаха.
func (c *BenchCache) GetPage(ctx context.Context, limit, offset int) (page []models.Bench, gen int64, ok bool, err error) {
	gen, err = c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	b, err := c.client.Get(ctx, c.pageKey(gen, limit, offset)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, gen, false, nil
		}
		return nil, gen, false, err
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, gen, false, nil
	}
	return page, gen, true, nil
}

// SetPage сохраняет страницу с TTL под поколением gen. Если с тех пор была запись,
// поколение уже сменилось и страница не будет прочитана.
func (c *BenchCache) SetPage(ctx context.Context, gen int64, limit, offset int, page []models.Bench) error {
	b, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.pageKey(gen, limit, offset), b, c.ttl).Err()
}

// Invalidate делает все закешированные страницы недействительными
func (c *BenchCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}
