// Package queue carries background jobs (outgoing mail) from the API to the
// worker through a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Job struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

func NewJob(kind string, payload interface{}) (Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Job{ID: uuid.NewString(), Kind: kind, Payload: data, EnqueuedAt: time.Now().UTC()}, nil
}

// Decode unmarshals the job payload into v.
func (j Job) Decode(v interface{}) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", j.Kind, err)
	}
	return nil
}

type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Source hands out jobs one at a time. A nil job with a nil error means the
// wait timed out.
type Source interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
}

type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("push job to %s: %w", q.key, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.rdb.BLPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop job from %s: %w", q.key, err)
	}

	// BLPOP answers [key, value].
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

// Noop drops jobs after logging them. Used when no Redis is configured.
type Noop struct {
	log logrus.FieldLogger
}

func NewNoop(log logrus.FieldLogger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) Enqueue(_ context.Context, job Job) error {
	n.log.WithFields(logrus.Fields{"job_id": job.ID, "kind": job.Kind}).Info("queue disabled, dropping job")
	return nil
}
