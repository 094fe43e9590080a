package queue

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDOf(t *testing.T) {
	t.Run("Заголовок имеет приоритет", func(t *testing.T) {
		message := kafka.Message{
			Key: []byte("key-id"),
			Headers: []kafka.Header{
				{Key: "other", Value: []byte("мимо")},
				{Key: CorrelationHeader, Value: []byte("header-id")},
			},
		}

		assert.Equal(t, "header-id", correlationIDOf(message))
	})

	t.Run("Без заголовка берётся ключ сообщения", func(t *testing.T) {
		message := kafka.Message{Key: []byte("key-id")}

		assert.Equal(t, "key-id", correlationIDOf(message))
	})
}
