package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/pkg/logger"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "notifications:stream"
	ConsumerGroupName  = "notification-workers"
	ConsumerNamePrefix = "mailer"

	payloadField = "notification"
	batchSize    = 10
)

// RedisStreamConfig 零值欄位使用預設值
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // 未 ack 的確認信閒置多久後重新投遞
	MaxRetryCount      int           // 投遞次數達上限就放棄這封信
	ReadGroupBlockTime time.Duration
	StreamMaxLen       int64 // XADD 時近似裁切的長度上限
}

func (c *RedisStreamConfig) withDefaults() RedisStreamConfig {
	cfg := RedisStreamConfig{
		ClaimMinIdleTime:   30 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		StreamMaxLen:       10000,
	}
	if c == nil {
		return cfg
	}
	if c.ClaimMinIdleTime > 0 {
		cfg.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		cfg.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		cfg.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	if c.StreamMaxLen > 0 {
		cfg.StreamMaxLen = c.StreamMaxLen
	}
	return cfg
}

// RedisStreamNotificationQueueImpl 以 consumer group 分派確認信；
// 寄送失敗的訊息留在 PEL，由 XAUTOCLAIM 重新領取
type RedisStreamNotificationQueueImpl struct {
	client   *redis.Client
	consumer string
	cfg      RedisStreamConfig
	log      *zap.Logger
}

func NewRedisStreamNotificationQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (NotificationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	q := &RedisStreamNotificationQueueImpl{
		client:   client,
		consumer: ConsumerNamePrefix + ":" + consumerID,
		cfg:      config.withDefaults(),
		log:      logger.WithComponent("mq").With(zap.String("stream", StreamKey)),
	}

	err := client.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("create consumer group %s: %w", ConsumerGroupName, err)
	}
	return q, nil
}

func (q *RedisStreamNotificationQueueImpl) PublishNotification(ctx context.Context, notification *model.ReservationNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: q.cfg.StreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			payloadField:       string(payload),
			"reservation_code": notification.ReservationCode,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("enqueue confirmation for %s: %w", notification.ReservationCode, err)
	}
	return nil
}

func (q *RedisStreamNotificationQueueImpl) SubscribeNotifications(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		go q.reclaim(ctx, out)

		for ctx.Err() == nil {
			msgs, err := q.readNew(ctx)
			if err != nil {
				q.log.Error("XReadGroup failed", zap.Error(err))
				sleepCtx(ctx, time.Second)
				continue
			}
			if !q.dispatch(ctx, out, msgs) {
				return
			}
		}
	}()
	return out, nil
}

// readNew 只讀新訊息；舊的未 ack 訊息交給 reclaim
func (q *RedisStreamNotificationQueueImpl) readNew(ctx context.Context) ([]redis.XMessage, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    ConsumerGroupName,
		Consumer: q.consumer,
		Streams:  []string{StreamKey, ">"},
		Count:    batchSize,
		Block:    q.cfg.ReadGroupBlockTime,
	}).Result()
	if errors.Is(err, redis.Nil) || ctx.Err() != nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var msgs []redis.XMessage
	for _, s := range streams {
		msgs = append(msgs, s.Messages...)
	}
	return msgs, nil
}

func (q *RedisStreamNotificationQueueImpl) reclaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	cursor := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   StreamKey,
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    cursor,
			Count:    batchSize,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			q.log.Error("XAutoClaim failed", zap.Error(err))
			continue
		}
		cursor = next
		if cursor == "" {
			cursor = "0-0"
		}

		if !q.dispatch(ctx, out, q.dropExhausted(ctx, claimed)) {
			return
		}
	}
}

// dropExhausted 一次查出這批訊息的投遞次數，達上限的直接 ack 放棄
func (q *RedisStreamNotificationQueueImpl) dropExhausted(ctx context.Context, claimed []redis.XMessage) []redis.XMessage {
	if len(claimed) == 0 {
		return nil
	}
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream:   StreamKey,
		Group:    ConsumerGroupName,
		Consumer: q.consumer,
		Start:    claimed[0].ID,
		End:      claimed[len(claimed)-1].ID,
		Count:    int64(len(claimed)) * 4,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		// 查不到次數就照常投遞
		q.log.Warn("XPendingExt failed", zap.Error(err))
		return claimed
	}

	deliveries := make(map[string]int64, len(pending))
	for _, p := range pending {
		deliveries[p.ID] = p.RetryCount
	}

	kept := claimed[:0]
	for _, msg := range claimed {
		if n := deliveries[msg.ID]; n >= int64(q.cfg.MaxRetryCount) {
			q.log.Warn("giving up on confirmation email",
				zap.String("message_id", msg.ID),
				zap.Any("reservation_code", msg.Values["reservation_code"]),
				zap.Int64("deliveries", n),
			)
			q.ack(ctx, msg.ID)
			continue
		}
		kept = append(kept, msg)
	}
	return kept
}

// dispatch 回傳 false 代表 ctx 已結束
func (q *RedisStreamNotificationQueueImpl) dispatch(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		notification, err := decodeNotification(msg)
		if err != nil {
			// 永遠無法處理，留在 PEL 只會一再重試
			q.log.Warn("dropping malformed message", zap.String("message_id", msg.ID), zap.Error(err))
			q.ack(ctx, msg.ID)
			continue
		}

		select {
		case out <- q.delivery(ctx, msg.ID, notification):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (q *RedisStreamNotificationQueueImpl) delivery(ctx context.Context, id string, n *model.ReservationNotification) Delivery {
	return Delivery{
		Data: n,
		Ack:  func() { q.ack(ctx, id) },
		Nack: func(requeue bool) {
			if requeue {
				q.log.Info("confirmation email will be retried",
					zap.String("message_id", id),
					zap.Duration("after", q.cfg.ClaimMinIdleTime),
				)
				return
			}
			q.ack(ctx, id)
		},
	}
}

func (q *RedisStreamNotificationQueueImpl) ack(ctx context.Context, id string) {
	if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, id).Err(); err != nil {
		q.log.Error("XAck failed", zap.String("message_id", id), zap.Error(err))
	}
}

func decodeNotification(msg redis.XMessage) (*model.ReservationNotification, error) {
	raw, ok := msg.Values[payloadField].(string)
	if !ok {
		return nil, fmt.Errorf("missing %q field", payloadField)
	}
	var n model.ReservationNotification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
