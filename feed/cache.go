package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Luismorlan/instamini/model"
	Logger "github.com/Luismorlan/instamini/utils/log"
	"github.com/go-redis/redis/v8"
)

const (
	// First explore page only. Score and like drift within the TTL is
	// accepted, toggles do not invalidate.
	exploreCacheTTL = 30 * time.Second

	cacheKeyDelimiter = "__"
)

var ctx = context.Background()

// Cache is a best effort redis cache for the explore listing. Every
// failure degrades to the database query and is logged, never surfaced.
type Cache struct {
	inner *redis.Client
}

func NewCache(addr string, password string) *Cache {
	return &Cache{
		inner: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0, // use default DB
		}),
	}
}

func exploreKey(limit int) string {
	return fmt.Sprintf("explore%s%d", cacheKeyDelimiter, limit)
}

func (c *Cache) GetExplore(limit int) ([]model.PostView, bool) {
	val, err := c.inner.Get(ctx, exploreKey(limit)).Result()
	if err != nil {
		if err != redis.Nil {
			Logger.Log.Error("explore cache read failed: ", err)
		}
		return nil, false
	}

	var views []model.PostView
	if err := json.Unmarshal([]byte(val), &views); err != nil {
		Logger.Log.Error("explore cache entry corrupted: ", err)
		return nil, false
	}
	return views, true
}

func (c *Cache) SetExplore(limit int, views []model.PostView) {
	buf, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := c.inner.Set(ctx, exploreKey(limit), buf, exploreCacheTTL).Err(); err != nil {
		Logger.Log.Error("explore cache write failed: ", err)
	}
}
