package service

import (
	"io"

	"go.uber.org/zap"

	"circleapp/internal/cache"
	"circleapp/internal/config"
	"circleapp/internal/queue"
	"circleapp/internal/repository"
	"circleapp/internal/storage"
)

// UploadFile - файл из multipart-формы, уже открытый хендлером
type UploadFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

type Service struct {
	Auth        AuthService
	User        UserService
	Thread      ThreadService
	ThreadQueue ThreadQueueService
	Reply       ReplyService
	Like        LikeService
	Follow      FollowService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage,
	pageCache cache.Cache, producer queue.Producer, dispatcher *queue.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(rep.User, cfg),
		User:        NewUserService(rep.User, store, cfg),
		Thread:      NewThreadService(rep.Thread, rep.User, store, pageCache, cfg, log),
		ThreadQueue: NewThreadQueueService(rep.User, store, producer, dispatcher, cfg, log),
		Reply:       NewReplyService(rep.Reply, rep.Thread, rep.User, store, cfg),
		Like:        NewLikeService(rep.Like, rep.Thread, rep.User),
		Follow:      NewFollowService(rep.Follow, rep.User),
	}
}
