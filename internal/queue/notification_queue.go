package queue

import (
	"context"
	"errors"
	"go-gin-flight-booking/internal/model"
)

// ErrQueueFull 記憶體隊列已滿；發送端不等待
var ErrQueueFull = errors.New("notification queue is full")

type Delivery struct {
	Data *model.ReservationNotification
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送訂位確認通知到隊列
	PublishNotification(ctx context.Context, notification *model.ReservationNotification) error
	// 訂閱通知隊列
	SubscribeNotifications(ctx context.Context) (<-chan Delivery, error)
}

type MemoryNotificationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.ReservationNotification
}

func NewMemoryNotificationQueue(bufferSize int) NotificationQueue {
	return &MemoryNotificationQueueImpl{
		ch: make(chan *model.ReservationNotification, bufferSize),
	}
}

func (q *MemoryNotificationQueueImpl) PublishNotification(ctx context.Context, notification *model.ReservationNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// buffer 滿了直接回錯，訂位已提交，不能卡在這裡
	select {
	case q.ch <- notification:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryNotificationQueueImpl) SubscribeNotifications(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notification, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: notification,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							// 重回隊列；隊列已滿則丟棄，避免卡住消費者
							select {
							case q.ch <- notification:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
