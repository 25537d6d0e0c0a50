package cache

import (
  "context"
  "encoding/json"

  "github.com/redis/go-redis/v9"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

const questionsKey = "reference:questions"

// ReferenceCache keeps the assembled question list in Redis so every
// workspace load does not re-join questions and categories. It is
// invalidated explicitly by admin mutations; there is no TTL and no
// reactive refetch. A nil *ReferenceCache is valid and disables caching.
type ReferenceCache struct {
  client *redis.Client
  log    *logger.Logger
}

func NewReferenceCache(addr string, baseLog *logger.Logger) *ReferenceCache {
  if addr == "" {
    return nil
  }
  cacheLog := baseLog.With("cache", "ReferenceCache")
  client := redis.NewClient(&redis.Options{Addr: addr})
  return &ReferenceCache{client: client, log: cacheLog}
}

// GetQuestions returns the cached question list, or (nil, false) on a miss.
// Cache errors degrade to a miss so callers fall through to the database.
func (rc *ReferenceCache) GetQuestions(ctx context.Context) ([]*types.Question, bool) {
  if rc == nil {
    return nil, false
  }
  raw, err := rc.client.Get(ctx, questionsKey).Bytes()
  if err == redis.Nil {
    return nil, false
  }
  if err != nil {
    rc.log.Warn("Reference cache read failed", "error", err)
    return nil, false
  }
  var questions []*types.Question
  if err := json.Unmarshal(raw, &questions); err != nil {
    rc.log.Warn("Reference cache payload corrupt, dropping", "error", err)
    _ = rc.client.Del(ctx, questionsKey).Err()
    return nil, false
  }
  return questions, true
}

func (rc *ReferenceCache) SetQuestions(ctx context.Context, questions []*types.Question) {
  if rc == nil {
    return
  }
  raw, err := json.Marshal(questions)
  if err != nil {
    rc.log.Warn("Reference cache marshal failed", "error", err)
    return
  }
  if err := rc.client.Set(ctx, questionsKey, raw, 0).Err(); err != nil {
    rc.log.Warn("Reference cache write failed", "error", err)
  }
}

// Invalidate drops the cached question list. Admin mutations call this so
// the next workspace load re-reads reference data.
func (rc *ReferenceCache) Invalidate(ctx context.Context) {
  if rc == nil {
    return
  }
  if err := rc.client.Del(ctx, questionsKey).Err(); err != nil {
    rc.log.Warn("Reference cache invalidation failed", "error", err)
  }
}
