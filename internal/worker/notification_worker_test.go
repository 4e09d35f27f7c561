package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	notifyMocks "go-gin-flight-booking/internal/mocks/notify"
	queueMocks "go-gin-flight-booking/internal/mocks/queue"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/queue"
	"go-gin-flight-booking/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationWorker_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// 1. 準備：Memory Queue + Mock Notifier
	q := queue.NewMemoryNotificationQueue(10)
	notifier := notifyMocks.NewNotifierMock()

	called := make(chan *model.ReservationNotification, 1)
	notifier.On("SendConfirmation", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { called <- args.Get(1).(*model.ReservationNotification) }).
		Return(nil).Once()

	// 2. 啟動 Worker
	w := worker.NewNotificationWorker(notifier, q)
	require.NoError(t, w.Start(ctx))

	// 3. 模擬訂位完成後丟入通知
	require.NoError(t, q.PublishNotification(ctx, &model.ReservationNotification{ReservationID: 1, ReservationCode: "abcdef1234"}))

	// 4. 驗證 Notifier 在時間內被呼叫
	select {
	case n := <-called:
		assert.Equal(t, "abcdef1234", n.ReservationCode)
	case <-time.After(time.Second):
		t.Fatal("超時！Worker 沒有在時間內寄送通知")
	}

	cancel()
	w.Wait()
	notifier.AssertExpectations(t)
}

func newDelivery(acked, nacked chan bool) queue.Delivery {
	return queue.Delivery{
		Data: &model.ReservationNotification{ReservationID: 2, PassengerEmail: "ada@example.com"},
		Ack:  func() { acked <- true },
		Nack: func(requeue bool) { nacked <- requeue },
	}
}

func TestNotificationWorker_AckOnSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	acked, nacked := make(chan bool, 1), make(chan bool, 1)
	deliveries := make(chan queue.Delivery, 1)
	deliveries <- newDelivery(acked, nacked)
	close(deliveries)

	q := queueMocks.NewNotificationQueueMock()
	q.On("SubscribeNotifications", ctx).Return((<-chan queue.Delivery)(deliveries), nil).Once()
	notifier := notifyMocks.NewNotifierMock()
	notifier.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	w := worker.NewNotificationWorker(notifier, q)
	require.NoError(t, w.Start(ctx))
	w.Wait()

	assert.Len(t, acked, 1)
	assert.Len(t, nacked, 0)
}

func TestNotificationWorker_NackRequeueOnFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	acked, nacked := make(chan bool, 1), make(chan bool, 1)
	deliveries := make(chan queue.Delivery, 1)
	deliveries <- newDelivery(acked, nacked)
	close(deliveries)

	q := queueMocks.NewNotificationQueueMock()
	q.On("SubscribeNotifications", ctx).Return((<-chan queue.Delivery)(deliveries), nil).Once()
	notifier := notifyMocks.NewNotifierMock()
	notifier.On("SendConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp timeout")).Once()

	w := worker.NewNotificationWorker(notifier, q)
	require.NoError(t, w.Start(ctx))
	w.Wait()

	assert.Len(t, acked, 0)
	require.Len(t, nacked, 1)
	assert.True(t, <-nacked)
}

func TestNotificationWorker_SubscribeError(t *testing.T) {
	ctx := context.Background()
	q := queueMocks.NewNotificationQueueMock()
	q.On("SubscribeNotifications", ctx).Return(nil, errors.New("no stream")).Once()

	w := worker.NewNotificationWorker(notifyMocks.NewNotifierMock(), q)
	assert.Error(t, w.Start(ctx))
}
