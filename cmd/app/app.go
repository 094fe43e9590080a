package app

import (
	"log"

	"go.uber.org/zap"

	"circleapp/internal/cache"
	"circleapp/internal/config"
	"circleapp/internal/database"
	"circleapp/internal/queue"
	"circleapp/internal/repository"
	"circleapp/internal/service"
	"circleapp/internal/storage"
)

type Deps struct {
	DB         *database.DB
	Repo       *repository.Repository
	Services   *service.Service
	PageCache  *cache.RedisCache
	Producer   *queue.KafkaProducerImpl
	Consumer   *queue.Consumer
	Dispatcher *queue.Dispatcher
}

func App(cfg *config.Config, logger *zap.Logger) *Deps {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// connection Redis: коннект проверяется сразу, при недоступности падаем на старте
	pageCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к Redis: %v", err)
	}

	// Kafka: продюсер и диспетчер ожидания результатов
	producer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	dispatcher := queue.NewDispatcher()

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID,
		repo.Thread, dispatcher, logger)

	services := service.NewService(repo, cfg, minioClient, pageCache, producer, dispatcher, logger)

	return &Deps{
		DB:         db,
		Repo:       repo,
		Services:   services,
		PageCache:  pageCache,
		Producer:   producer,
		Consumer:   consumer,
		Dispatcher: dispatcher,
	}
}
