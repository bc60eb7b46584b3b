package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/roborush/portal/config"
)

// Message is one outbound email. Messages are JSON-encoded onto a redis
// list and delivered by the worker, decoupled from the request path.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Enqueuer is what request handlers see: fire-and-forget enqueue. An
// enqueue failure is the caller's to log and swallow, never to surface.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message) error
}

// Queue is the redis-backed Enqueuer.
type Queue struct {
	rdb *redis.Client
	key string
}

func NewQueue(rdb *redis.Client, key string) *Queue {
	return &Queue{rdb: rdb, key: key}
}

func (q *Queue) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

// ConnectRedis opens the redis connection used for the mail queue.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return rdb, nil
}
