package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"circleapp/internal/models"
)

// CorrelationHeader - заголовок, по которому консьюмер находит ждущий запрос
const CorrelationHeader = "correlation_id"

// Producer publishes a thread-creation payload into the queue
type Producer interface {
	Publish(ctx context.Context, correlationID string, message models.ThreadMessage) error
}

type KafkaProducerImpl struct {
	writer *kafka.Writer
}

// NewKafkaProducer создаёт writer один раз на старте процесса,
// дальше он переживает все запросы
func NewKafkaProducer(brokers []string, topic string) *KafkaProducerImpl {
	return &KafkaProducerImpl{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (kp *KafkaProducerImpl) Publish(ctx context.Context, correlationID string, message models.ThreadMessage) error {
	messageData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сообщения: %w", err)
	}

	err = kp.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(correlationID),
		Value: messageData,
		Headers: []kafka.Header{
			{Key: CorrelationHeader, Value: []byte(correlationID)},
		},
	})
	if err != nil {
		return fmt.Errorf("ошибка отправки сообщения в очередь: %w", err)
	}

	return nil
}

func (kp *KafkaProducerImpl) Close() error {
	return kp.writer.Close()
}
