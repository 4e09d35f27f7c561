package notify

import (
	"context"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 寄送訂位確認通知
type Notifier interface {
	SendConfirmation(ctx context.Context, notification *model.ReservationNotification) error
}

// LogNotifier 未設定 SMTP 時只把通知寫進日誌
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, notification *model.ReservationNotification) error {
	subject, _ := ComposeConfirmation(notification)
	logger.WithComponent("notify").Info("confirmation email (smtp disabled)",
		zap.String("to", notification.PassengerEmail),
		zap.String("subject", subject),
		zap.String("reservation_code", notification.ReservationCode),
	)
	return nil
}
