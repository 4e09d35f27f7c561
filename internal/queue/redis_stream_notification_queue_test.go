package queue_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/queue"
	"go-gin-flight-booking/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Printf("Test redis unavailable, stream tests will be skipped: %v", err)
		os.Exit(m.Run())
	}
	testRdb = rdb

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	if testRdb == nil {
		t.Skip("test redis not available")
	}
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func newNotification(code string) *model.ReservationNotification {
	departure := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	return &model.ReservationNotification{
		ReservationID:   1,
		ReservationCode: code,
		PassengerName:   "Ada Obi",
		PassengerEmail:  "ada@example.com",
		FlightNumber:    "NG100",
		Departure:       "Lagos",
		Destination:     "Abuja",
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(time.Hour),
	}
}

func TestNewRedisStreamNotificationQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "test-consumer", nil)
	require.NoError(t, err)
	require.NotNil(t, q)

	// 第二次建立時 consumer group 已存在
	q, err = queue.NewRedisStreamNotificationQueue(ctx, testRdb, "", nil)
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestRedisStreamNotificationQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "deliver-test", nil)
	require.NoError(t, err)

	sent := newNotification("deliver001")
	require.NoError(t, q.PublishNotification(ctx, sent))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeNotifications(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "應收到一筆")
		require.NotNil(t, d.Data)
		assert.Equal(t, sent.ReservationCode, d.Data.ReservationCode)
		assert.Equal(t, sent.PassengerEmail, d.Data.PassengerEmail)
		assert.Equal(t, sent.FlightNumber, d.Data.FlightNumber)
		assert.True(t, sent.DepartureTime.Equal(d.Data.DepartureTime))
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到訊息")
	}
}

func TestRedisStreamNotificationQueue_NackDiscard_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "nack-discard-test", &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, q.PublishNotification(ctx, newNotification("discard001")))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeNotifications(subCtx)
	require.NoError(t, err)

	select {
	case d := <-delCh:
		d.Nack(false)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.ReservationCode == "discard001" {
			t.Fatal("Nack(false) 後不應再投遞同一筆")
		}
	case <-time.After(time.Second):
	}
}

func TestRedisStreamNotificationQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "nack-requeue-test", &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, q.PublishNotification(ctx, newNotification("requeue001")))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeNotifications(subCtx)
	require.NoError(t, err)

	first := <-delCh
	require.NotNil(t, first.Data)
	first.Nack(true)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		assert.Equal(t, "requeue001", d.Data.ReservationCode)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("Nack(true) 後應在 ClaimMinIdleTime 後重新投遞")
	}
}

func TestRedisStreamNotificationQueue_MalformedMessageIsDropped(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "malformed-test", nil)
	require.NoError(t, err)

	require.NoError(t, testRdb.XAdd(ctx, &redis.XAddArgs{
		Stream: queue.StreamKey,
		Values: map[string]interface{}{"notification": "{not json"},
	}).Err())
	require.NoError(t, q.PublishNotification(ctx, newNotification("valid00001")))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeNotifications(subCtx)
	require.NoError(t, err)

	select {
	case d := <-delCh:
		assert.Equal(t, "valid00001", d.Data.ReservationCode)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到有效訊息")
	}

	pending, err := testRdb.XPending(ctx, queue.StreamKey, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestRedisStreamNotificationQueue_GivesUpAfterMaxDeliveries(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "give-up-test", &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		MaxRetryCount:      1,
		ReadGroupBlockTime: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, q.PublishNotification(ctx, newNotification("giveup0001")))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeNotifications(subCtx)
	require.NoError(t, err)

	first := <-delCh
	require.NotNil(t, first.Data)
	first.Nack(true)

	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.ReservationCode == "giveup0001" {
			t.Fatal("投遞次數已達上限，不應再投遞")
		}
	case <-time.After(1500 * time.Millisecond):
	}

	pending, err := testRdb.XPending(ctx, queue.StreamKey, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestRedisStreamNotificationQueue_PublishTagsReservationCode(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamNotificationQueue(ctx, testRdb, "tag-test", nil)
	require.NoError(t, err)
	require.NoError(t, q.PublishNotification(ctx, newNotification("tagged0001")))

	msgs, err := testRdb.XRange(ctx, queue.StreamKey, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tagged0001", msgs[0].Values["reservation_code"])
}
