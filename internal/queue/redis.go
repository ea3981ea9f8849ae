package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisQueue.
type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	Inbound     string
	Outbound    string
	PollTimeout time.Duration
}

// RedisQueue uses Redis lists: producers LPUSH and the worker BRPOPs, so delivery is FIFO.
type RedisQueue struct {
	client   *redis.Client
	inbound  string
	outbound string
	timeout  time.Duration
}

var _ Queue = &RedisQueue{} // Compile-time check

// NewRedisQueue creates a queue over a new client. Empty names take the defaults.
func NewRedisQueue(opts RedisOptions) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisQueueWithClient(client, opts)
}

// NewRedisQueueWithClient wraps an existing client.
func NewRedisQueueWithClient(client *redis.Client, opts RedisOptions) *RedisQueue {
	q := &RedisQueue{
		client:   client,
		inbound:  opts.Inbound,
		outbound: opts.Outbound,
		timeout:  opts.PollTimeout,
	}
	if q.inbound == "" {
		q.inbound = contract.DefaultInboundQueue
	}
	if q.outbound == "" {
		q.outbound = contract.DefaultOutboundQueue
	}
	if q.timeout <= 0 {
		q.timeout = contract.DefaultPollTimeout
	}
	return q
}

// DeadLetterKey returns the list holding failed inbound messages.
func (q *RedisQueue) DeadLetterKey() string {
	return q.inbound + ":failed"
}

// Ping checks the connection.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Consume implements the Consumer interface.
func (q *RedisQueue) Consume(ctx context.Context) (contract.Message, error) {
	res, err := q.client.BRPop(ctx, q.timeout, q.inbound).Result()
	if errors.Is(err, redis.Nil) {
		return contract.Message{}, contract.ErrNoMessage
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return contract.Message{}, ctxErr
		}
		return contract.Message{}, fmt.Errorf("failed to pop from %s: %w", q.inbound, err)
	}
	// BRPOP replies with [key, value]
	if len(res) != 2 {
		return contract.Message{}, fmt.Errorf("unexpected BRPOP reply of length %d", len(res))
	}
	return contract.Message{ID: uuid.NewString(), Payload: []byte(res[1])}, nil
}

// Fail implements the Consumer interface.
func (q *RedisQueue) Fail(ctx context.Context, msg contract.Message, cause error) error {
	data, err := json.Marshal(newDeadLetter(msg.ID, msg.Payload, cause, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to encode dead letter: %w", err)
	}
	if err := q.client.LPush(ctx, q.DeadLetterKey(), data).Err(); err != nil {
		return fmt.Errorf("failed to push to %s: %w", q.DeadLetterKey(), err)
	}
	return nil
}

// Publish implements the Publisher interface.
func (q *RedisQueue) Publish(ctx context.Context, resp schema.BoostResponse) error {
	data, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.outbound, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", q.outbound, err)
	}
	return nil
}

// Enqueue implements the Queue interface.
func (q *RedisQueue) Enqueue(ctx context.Context, payload []byte) error {
	if err := q.client.LPush(ctx, q.inbound, payload).Err(); err != nil {
		return fmt.Errorf("failed to push to %s: %w", q.inbound, err)
	}
	return nil
}

// Close closes the client.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
