package queue

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"circleapp/internal/models"
)

// ThreadStore - минимальный срез репозитория, нужный консьюмеру
type ThreadStore interface {
	CreateThread(ctx context.Context, thread *models.Thread) error
}

// Consumer читает очередь создания тредов одним фоновым циклом на процесс.
// Оффсет коммитится только после успешной вставки в базу: упавший на середине
// консьюмер получит сообщение повторно (at-least-once).
type Consumer struct {
	reader     *kafka.Reader
	threads    ThreadStore
	dispatcher *Dispatcher
	log        *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(brokers []string, topic, groupID string, threads ThreadStore, dispatcher *Dispatcher, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		threads:    threads,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.run(ctx)
}

func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.reader.Close()
	c.wg.Wait()
}

func (c *Consumer) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error("ошибка чтения из очереди", zap.Error(err))
			continue
		}

		c.handleMessage(ctx, message)
	}
}

func (c *Consumer) handleMessage(ctx context.Context, message kafka.Message) {
	correlationID := correlationIDOf(message)

	var payload models.ThreadMessage
	if err := json.Unmarshal(message.Value, &payload); err != nil {
		c.log.Error("нечитаемое сообщение в очереди",
			zap.String("correlationId", correlationID), zap.Error(err))

		// мусорное сообщение переигрывать бессмысленно, коммитим и идём дальше
		if err := c.reader.CommitMessages(ctx, message); err != nil {
			c.log.Error("ошибка коммита оффсета", zap.Error(err))
		}
		c.dispatcher.Resolve(correlationID, Result{Err: err})
		return
	}

	thread := &models.Thread{
		ThreadID: payload.ThreadID,
		Content:  payload.Content,
		Images:   payload.Image,
		AuthorID: payload.User,
	}

	if err := c.threads.CreateThread(ctx, thread); err != nil {
		c.log.Error("ошибка сохранения треда из очереди",
			zap.String("correlationId", correlationID), zap.Error(err))

		// оффсет не коммитим: сообщение будет доставлено повторно
		c.dispatcher.Resolve(correlationID, Result{Err: err})
		return
	}

	if err := c.reader.CommitMessages(ctx, message); err != nil {
		c.log.Error("ошибка коммита оффсета", zap.Error(err))
	}

	c.log.Info("тред из очереди сохранен",
		zap.String("correlationId", correlationID),
		zap.String("threadId", thread.ThreadID))

	c.dispatcher.Resolve(correlationID, Result{Thread: thread})
}

func correlationIDOf(message kafka.Message) string {
	for _, header := range message.Headers {
		if header.Key == CorrelationHeader {
			return string(header.Value)
		}
	}
	return string(message.Key)
}
