package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"circleapp/internal/apperrors"
	"circleapp/internal/config"
	"circleapp/internal/models"
	"circleapp/internal/queue"
	"circleapp/internal/repository"
	"circleapp/internal/storage"
)

// QueueCreateResult - итог постановки треда в очередь.
// Accepted взводится, когда ожидание подтверждения истекло: сообщение уже
// в очереди и будет сохранено, но ответа консьюмера запрос не дождался.
type QueueCreateResult struct {
	Thread    *models.Thread
	RequestID string
	Accepted  bool
}

type ThreadQueueService interface {
	AddThreadQueue(ctx context.Context, req repository.CreateThreadRequest, files []UploadFile) (*QueueCreateResult, error)
}

type threadQueueService struct {
	userRepo   repository.UserRepository
	storage    storage.Storage
	producer   queue.Producer
	dispatcher *queue.Dispatcher
	cfg        *config.Config
	log        *zap.Logger
}

func NewThreadQueueService(userRepo repository.UserRepository, store storage.Storage,
	producer queue.Producer, dispatcher *queue.Dispatcher, cfg *config.Config, log *zap.Logger) ThreadQueueService {
	return &threadQueueService{
		userRepo:   userRepo,
		storage:    store,
		producer:   producer,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
	}
}

// AddThreadQueue гонит создание треда через очередь: картинки заливаются
// до публикации (упавшая загрузка - сообщение не уходит), затем запрос ждёт,
// пока консьюмер сохранит строку. Ожидание ограничено по времени.
func (s *threadQueueService) AddThreadQueue(ctx context.Context, req repository.CreateThreadRequest, files []UploadFile) (*QueueCreateResult, error) {
	exists, err := s.userRepo.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	requestID := uuid.New().String()

	// id треда выбирается до публикации: картинки ложатся под тем же
	// префиксом, под которым тред окажется в базе, как и в синхронном пути
	threadID := uuid.New().String()

	imageURLs, err := s.uploadAll(ctx, threadID, files)
	if err != nil {
		return nil, err
	}

	payload := models.ThreadMessage{
		ThreadID: threadID,
		Content:  req.Content,
		Image:    imageURLs,
		User:     req.AuthorID,
	}

	// регистрируемся до публикации, чтобы не проиграть гонку с консьюмером
	resultCh := s.dispatcher.Register(requestID)
	defer s.dispatcher.Cancel(requestID)

	if err := s.producer.Publish(ctx, requestID, payload); err != nil {
		return nil, err
	}

	timer := time.NewTimer(s.cfg.Kafka.WaitTimeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		if result.Err != nil {
			return nil, result.Err
		}
		return &QueueCreateResult{Thread: result.Thread, RequestID: requestID}, nil
	case <-timer.C:
		s.log.Warn("подтверждение из очереди не пришло вовремя", zap.String("requestId", requestID))
		return &QueueCreateResult{RequestID: requestID, Accepted: true}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *threadQueueService) uploadAll(ctx context.Context, threadID string, files []UploadFile) ([]string, error) {
	imageURLs := []string{}
	objectNames := []string{}

	for _, file := range files {
		objectName, imageURL, err := s.storage.UploadImage(ctx, threadID, file.Name, file.Content, file.Size)
		if err != nil {
			for _, name := range objectNames {
				if delErr := s.storage.DeleteImage(ctx, name); delErr != nil {
					s.log.Error("не удалось удалить объект после сбоя загрузки", zap.String("object", name), zap.Error(delErr))
				}
			}
			return nil, err
		}

		imageURLs = append(imageURLs, imageURL)
		objectNames = append(objectNames, objectName)
	}

	return imageURLs, nil
}
