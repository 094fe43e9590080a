package service

import (
	"context"

	"circleapp/internal/apperrors"
	"circleapp/internal/config"
	"circleapp/internal/models"
	"circleapp/internal/repository"
	"circleapp/internal/storage"
)

type ReplyService interface {
	AddReply(ctx context.Context, threadID, authorID, content string, files []UploadFile) (*models.Reply, error)
	UpdateReply(ctx context.Context, replyID, authorID, content string, files []UploadFile) (*models.Reply, error)
	DeleteReply(ctx context.Context, replyID, authorID string) (*models.Reply, error)
}

type replyService struct {
	replyRepo  repository.ReplyRepository
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
	storage    storage.Storage
	cfg        *config.Config
}

func NewReplyService(replyRepo repository.ReplyRepository, threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository, store storage.Storage, cfg *config.Config) ReplyService {
	return &replyService{
		replyRepo:  replyRepo,
		threadRepo: threadRepo,
		userRepo:   userRepo,
		storage:    store,
		cfg:        cfg,
	}
}

func (s *replyService) AddReply(ctx context.Context, threadID, authorID, content string, files []UploadFile) (*models.Reply, error) {
	exists, err := s.userRepo.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return nil, err
	}

	imageURLs := []string{}
	for _, file := range files {
		_, imageURL, err := s.storage.UploadImage(ctx, threadID, file.Name, file.Content, file.Size)
		if err != nil {
			return nil, err
		}
		imageURLs = append(imageURLs, imageURL)
	}

	reply := &models.Reply{
		ThreadID: threadID,
		AuthorID: authorID,
		Content:  content,
		Images:   imageURLs,
	}

	if err := s.replyRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *replyService) UpdateReply(ctx context.Context, replyID, authorID, content string, files []UploadFile) (*models.Reply, error) {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, err
	}

	if reply.AuthorID != authorID {
		return nil, apperrors.ErrForbidden
	}

	if content != "" {
		reply.Content = content
	}

	if len(files) > 0 {
		imageURLs := []string{}
		for _, file := range files {
			_, imageURL, err := s.storage.UploadImage(ctx, reply.ThreadID, file.Name, file.Content, file.Size)
			if err != nil {
				return nil, err
			}
			imageURLs = append(imageURLs, imageURL)
		}

		for _, oldURL := range reply.Images {
			if objectName := storage.ObjectNameFromURL(oldURL, s.cfg.MinIO.BucketName); objectName != "" {
				_ = s.storage.DeleteImage(ctx, objectName)
			}
		}

		reply.Images = imageURLs
	}

	if err := s.replyRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *replyService) DeleteReply(ctx context.Context, replyID, authorID string) (*models.Reply, error) {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, err
	}

	if reply.AuthorID != authorID {
		return nil, apperrors.ErrForbidden
	}

	for _, imageURL := range reply.Images {
		if objectName := storage.ObjectNameFromURL(imageURL, s.cfg.MinIO.BucketName); objectName != "" {
			_ = s.storage.DeleteImage(ctx, objectName)
		}
	}

	if err := s.replyRepo.DeleteReply(ctx, replyID); err != nil {
		return nil, err
	}

	return reply, nil
}
