package worker

import (
	"context"
	"go-gin-flight-booking/internal/notify"
	"go-gin-flight-booking/internal/queue"
	"go-gin-flight-booking/pkg/logger"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultSendTimeout = 30 * time.Second

type NotificationWorker interface {
	// 訂閱通知隊列並在背景寄送確認信
	Start(ctx context.Context) error
	// Wait 等待消費迴圈結束（ctx 取消後）
	Wait()
}

type NotificationWorkerImpl struct {
	notifier    notify.Notifier
	queue       queue.NotificationQueue
	sendTimeout time.Duration
	wg          sync.WaitGroup
}

func NewNotificationWorker(notifier notify.Notifier, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier:    notifier,
		queue:       queue,
		sendTimeout: defaultSendTimeout,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotifications(ctx)
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()
	return nil
}

func (w *NotificationWorkerImpl) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorkerImpl) handle(ctx context.Context, msg queue.Delivery) {
	log := logger.WithComponent("worker").With(
		zap.Int("reservation_id", msg.Data.ReservationID),
		zap.String("to", msg.Data.PassengerEmail),
	)

	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.notifier.SendConfirmation(sendCtx, msg.Data); err != nil {
		// SMTP 暫時失敗，交回隊列稍後重試
		log.Warn("send confirmation failed, requeue", zap.Error(err))
		msg.Nack(true)
		return
	}
	msg.Ack()
}
