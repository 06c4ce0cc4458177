package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	submitPrefix      = "submitlimit:"
	streamSubmissions = "slownik.submissions"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// AllowSubmit counts public submissions per client IP in a fixed window.
func AllowSubmit(ctx context.Context, rdb *redis.Client, ip string, rate int, window time.Duration) (bool, error) {
	key := submitPrefix + ip
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		rdb.Expire(ctx, key, window)
	}
	return n <= int64(rate), nil
}

// PublishSubmission notifies moderation consumers about a new proposal.
func PublishSubmission(ctx context.Context, rdb *redis.Client, payload map[string]any) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamSubmissions,
		Values: payload,
	}).Result()
	return err
}
