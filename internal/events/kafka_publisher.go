package events

import (
	"context"
	"encoding/json"
	"fmt"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/pkg/logger"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter 是 kafka.Writer 用到的部分，測試時可替換
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return newKafkaPublisher(writer, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// PublishReservationCreated 以航班 ID 為 key，同一航班的事件會落在同一 partition
func (p *KafkaPublisher) PublishReservationCreated(ctx context.Context, reservation *model.Reservation) error {
	event := NewReservationCreatedEvent(reservation)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.Itoa(reservation.FlightID)),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logger.WithComponent("events").Debug("published reservation event",
		zap.String("topic", p.topic),
		zap.Int("reservation_id", reservation.ID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
