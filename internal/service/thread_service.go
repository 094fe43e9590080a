package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"circleapp/internal/apperrors"
	"circleapp/internal/cache"
	"circleapp/internal/config"
	"circleapp/internal/models"
	"circleapp/internal/repository"
	"circleapp/internal/storage"
)

// PageSize зафиксирован: и окно выборки, и ключи кеша считаются от него
const PageSize = 10

const cachedPageMessage = "Find All Cache Thread Success"

type ThreadService interface {
	FindAll(ctx context.Context, page int) (*models.ThreadPage, error)
	FindAllCached(ctx context.Context, page int) (*models.ThreadPage, bool, error)
	FindByID(ctx context.Context, threadID string) (*models.Thread, error)
	AddThread(ctx context.Context, req repository.CreateThreadRequest, files []UploadFile) (*models.Thread, error)
	UpdateThread(ctx context.Context, req repository.UpdateThreadRequest, files []UploadFile) (*models.Thread, error)
	DeleteThread(ctx context.Context, threadID, userID string) (*models.Thread, error)
}

type threadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
	storage    storage.Storage
	cache      cache.Cache
	cfg        *config.Config
	log        *zap.Logger
}

func NewThreadService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository,
	store storage.Storage, pageCache cache.Cache, cfg *config.Config, log *zap.Logger) ThreadService {
	return &threadService{
		threadRepo: threadRepo,
		userRepo:   userRepo,
		storage:    store,
		cache:      pageCache,
		cfg:        cfg,
		log:        log,
	}
}

// loadPage - общий для кешированного и некешированного пути движок пагинации.
// page > totalPages - это 404, а не пустая страница; при totalThread = 0
// totalPages тоже 0, так что даже page = 1 по пустой базе отдаёт "не найдено".
func (s *threadService) loadPage(ctx context.Context, page int) (*models.ThreadPage, error) {
	skip := (page - 1) * PageSize

	threads, err := s.threadRepo.FindPage(ctx, skip, PageSize)
	if err != nil {
		return nil, err
	}

	totalThread, err := s.threadRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (totalThread + PageSize - 1) / PageSize

	if page > totalPages {
		return nil, apperrors.ErrPageNotFound
	}

	if threads == nil {
		threads = []models.Thread{}
	}

	return &models.ThreadPage{
		Data: threads,
		Pagination: models.Pagination{
			TotalThread: totalThread,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    PageSize,
		},
	}, nil
}

func (s *threadService) FindAll(ctx context.Context, page int) (*models.ThreadPage, error) {
	return s.loadPage(ctx, page)
}

// FindAllCached обслуживает выдачу через кеш со сверкой на свежесть.
// На попадании снапшот всегда сверяется со свежим чтением базы: совпали
// количество элементов, счётчики страниц и поэлементно content + images -
// отдаём кеш как есть. Лайки и ответы в сверку сознательно не входят:
// их изменение страницу из кеша не выбивает, это осознанное продуктовое решение.
// Возвращает признак того, что ответ пришёл из кеша.
func (s *threadService) FindAllCached(ctx context.Context, page int) (*models.ThreadPage, bool, error) {
	cacheKey := cache.ThreadsPageKey(page)

	cacheData, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		return nil, false, err
	}

	if cacheData != nil {
		var cached models.CachedThreadPage
		if err := json.Unmarshal(cacheData, &cached); err != nil {
			// запись не декодируется - считаем её повреждённой, чистим и идём в базу
			corruption := &apperrors.CacheCorruptionError{Key: cacheKey, Err: err}
			s.log.Warn("повреждённый снапшот страницы", zap.String("key", cacheKey), zap.Error(corruption))

			if delErr := s.cache.Delete(ctx, cacheKey); delErr != nil {
				s.log.Error("не удалось удалить повреждённую запись", zap.String("key", cacheKey), zap.Error(delErr))
			}
		} else {
			skip := (page - 1) * PageSize

			freshThreads, err := s.threadRepo.FindPage(ctx, skip, PageSize)
			if err != nil {
				return nil, false, err
			}

			totalThread, err := s.threadRepo.Count(ctx)
			if err != nil {
				return nil, false, err
			}

			totalPages := (totalThread + PageSize - 1) / PageSize

			if snapshotMatches(&cached, freshThreads, totalThread, totalPages) {
				return &models.ThreadPage{
					Data:       cached.Data,
					Pagination: cached.Pagination,
				}, true, nil
			}

			// снапшот устарел: выбиваем ключ и перечитываем страницу целиком
			if err := s.cache.Delete(ctx, cacheKey); err != nil {
				return nil, false, err
			}
		}
	}

	threadPage, err := s.loadPage(ctx, page)
	if err != nil {
		return nil, false, err
	}

	blob, err := json.Marshal(models.CachedThreadPage{
		Message:    cachedPageMessage,
		Data:       threadPage.Data,
		Pagination: threadPage.Pagination,
	})
	if err != nil {
		return nil, false, fmt.Errorf("ошибка сериализации страницы для кеша: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, blob, s.cfg.Redis.CacheTTL); err != nil {
		return nil, false, err
	}

	return threadPage, false, nil
}

// snapshotMatches решает, жив ли ещё закешированный снапшот страницы.
// Сравнение поэлементное и только по content и images - без лайков и ответов.
func snapshotMatches(cached *models.CachedThreadPage, fresh []models.Thread, totalThread, totalPages int) bool {
	if len(cached.Data) != len(fresh) {
		return false
	}

	if cached.Pagination.TotalThread != totalThread || cached.Pagination.TotalPages != totalPages {
		return false
	}

	for i := range fresh {
		if fresh[i].Content != cached.Data[i].Content {
			return false
		}

		if len(fresh[i].Images) != len(cached.Data[i].Images) {
			return false
		}

		for j := range fresh[i].Images {
			if fresh[i].Images[j] != cached.Data[i].Images[j] {
				return false
			}
		}
	}

	return true
}

func (s *threadService) FindByID(ctx context.Context, threadID string) (*models.Thread, error) {
	return s.threadRepo.GetByID(ctx, threadID)
}

func (s *threadService) AddThread(ctx context.Context, req repository.CreateThreadRequest, files []UploadFile) (*models.Thread, error) {
	exists, err := s.userRepo.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	threadID := uuid.New().String()

	imageURLs, err := s.uploadAll(ctx, threadID, files)
	if err != nil {
		return nil, err
	}

	thread := &models.Thread{
		ThreadID: threadID,
		Content:  req.Content,
		Images:   imageURLs,
		AuthorID: req.AuthorID,
	}

	if err := s.threadRepo.CreateThread(ctx, thread); err != nil {
		return nil, err
	}

	thread.Likes = []models.Like{}
	thread.Replies = []models.Reply{}

	return thread, nil
}

func (s *threadService) UpdateThread(ctx context.Context, req repository.UpdateThreadRequest, files []UploadFile) (*models.Thread, error) {
	thisThread, err := s.threadRepo.GetByID(ctx, req.ThreadID)
	if err != nil {
		return nil, err
	}

	if thisThread.AuthorID != req.AuthorID {
		return nil, apperrors.ErrForbidden
	}

	content := thisThread.Content
	if req.Content != "" {
		content = req.Content
	}

	images := []string(thisThread.Images)

	if len(files) > 0 {
		newImages, err := s.uploadAll(ctx, req.ThreadID, files)
		if err != nil {
			return nil, err
		}

		// старые картинки больше никем не используются
		s.removeImages(ctx, thisThread.Images)

		images = newImages
	}

	thisThread.Content = content
	thisThread.Images = images

	if err := s.threadRepo.UpdateThread(ctx, thisThread); err != nil {
		return nil, err
	}

	return thisThread, nil
}

func (s *threadService) DeleteThread(ctx context.Context, threadID, userID string) (*models.Thread, error) {
	thisThread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if thisThread.AuthorID != userID {
		return nil, apperrors.ErrForbidden
	}

	s.removeImages(ctx, thisThread.Images)

	if err := s.threadRepo.DeleteThread(ctx, threadID); err != nil {
		return nil, err
	}

	return thisThread, nil
}

// uploadAll заливает файлы по одному; любая неудача валит всю операцию,
// уже залитые объекты подчищаются
func (s *threadService) uploadAll(ctx context.Context, threadID string, files []UploadFile) ([]string, error) {
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

func (s *threadService) removeImages(ctx context.Context, imageURLs []string) {
	for _, imageURL := range imageURLs {
		objectName := storage.ObjectNameFromURL(imageURL, s.cfg.MinIO.BucketName)
		if objectName == "" {
			continue
		}

		if err := s.storage.DeleteImage(ctx, objectName); err != nil {
			s.log.Warn("не удалось удалить картинку из MinIO", zap.String("object", objectName), zap.Error(err))
		}
	}
}
