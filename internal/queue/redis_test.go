package queue

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisQueue_Defaults(t *testing.T) {
	q := NewRedisQueue(RedisOptions{Addr: "localhost:6379"})
	defer func() { _ = q.Close() }()

	assert.Equal(t, contract.DefaultInboundQueue, q.inbound)
	assert.Equal(t, contract.DefaultOutboundQueue, q.outbound)
	assert.Equal(t, contract.DefaultPollTimeout, q.timeout)
	assert.Equal(t, "compute-boost:failed", q.DeadLetterKey())
}

// localRedisQueue returns a queue on unique keys, or skips when Redis is not running locally.
func localRedisQueue(t *testing.T) (*RedisQueue, *redis.Client) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}

	suffix := strconv.FormatInt(time.Now().UnixNano(), 10)
	q := NewRedisQueueWithClient(client, RedisOptions{
		Inbound:     "test-compute-boost-" + suffix,
		Outbound:    "test-send-boost-response-" + suffix,
		PollTimeout: time.Second,
	})
	t.Cleanup(func() {
		_ = client.Del(context.Background(), q.inbound, q.outbound, q.DeadLetterKey()).Err()
		_ = client.Close()
	})
	return q, client
}

func TestRedisQueue_RoundTrip(t *testing.T) {
	q, client := localRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, []byte("one")))
	require.NoError(t, q.Enqueue(ctx, []byte("two")))

	msg, err := q.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", string(msg.Payload))

	require.NoError(t, q.Fail(ctx, msg, errors.New("bad record")))
	raw, err := client.LIndex(ctx, q.DeadLetterKey(), 0).Bytes()
	require.NoError(t, err)
	dl, err := DecodeDeadLetter(raw)
	require.NoError(t, err)
	assert.Equal(t, "one", dl.Payload)

	require.NoError(t, q.Publish(ctx, sampleResponse()))
	data, err := client.RPop(ctx, q.outbound).Bytes()
	require.NoError(t, err)
	resp, err := DecodeResponse(data)
	require.NoError(t, err)
	assert.Equal(t, sampleResponse(), resp)

	_, err = q.Consume(ctx)
	require.NoError(t, err)
	_, err = q.Consume(ctx)
	assert.ErrorIs(t, err, contract.ErrNoMessage)
}
