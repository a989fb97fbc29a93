package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher синхронно публикует доменные события в один топик
// Ключ сообщения - ID агрегата, чтобы события одного агрегата попадали в одну партицию
type KafkaPublisher struct {
	w        messageWriter
	producer string
	now      func() time.Time
}

// NewKafkaPublisher создает издателя событий
func NewKafkaPublisher(brokers []string, topic, producer string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, producer)
}

func newKafkaPublisher(w messageWriter, producer string) *KafkaPublisher {
	return &KafkaPublisher{w: w, producer: producer, now: time.Now}
}

// Publish упаковывает payload в конверт и записывает в топик
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	env, err := NewEnvelope(eventType, p.producer, payload, p.now())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodeEvent, eventType, err)
	}

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodeEvent, eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, eventType, err)
	}
	return nil
}

// Close закрывает writer и дожидается отправки буфера
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Nop издатель-заглушка, когда Kafka выключена
type Nop struct{}

func (Nop) Publish(context.Context, string, string, interface{}) error {
	return nil
}
