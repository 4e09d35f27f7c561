package notify

import (
	"context"
	"fmt"
	"go-gin-flight-booking/config"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/pkg/logger"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPNotifier 透過 SMTP 寄送確認信
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

func NewSMTPNotifier(cfg config.SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPNotifier{client: client, from: cfg.From}, nil
}

func (n *SMTPNotifier) SendConfirmation(ctx context.Context, notification *model.ReservationNotification) error {
	msg, err := buildMessage(n.from, notification)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	logger.WithComponent("notify").Info("confirmation email sent",
		zap.String("to", notification.PassengerEmail),
		zap.Int("reservation_id", notification.ReservationID),
	)
	return nil
}

func buildMessage(from string, notification *model.ReservationNotification) (*mail.Msg, error) {
	subject, body := ComposeConfirmation(notification)

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(notification.PassengerEmail); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
