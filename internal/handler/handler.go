package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"circleapp/internal/config"
	"circleapp/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	ThreadService service.ThreadService
	ThreadQueue   service.ThreadQueueService
	ReplyService  service.ReplyService
	LikeService   service.LikeService
	FollowService service.FollowService
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		UserService:   services.User,
		ThreadService: services.Thread,
		ThreadQueue:   services.ThreadQueue,
		ReplyService:  services.Reply,
		LikeService:   services.Like,
		FollowService: services.Follow,
		Cfg:           cfg,
		Validate:      validator.New(),
	}
}

// только UUID v4, всё остальное отлетает с 400 до похода в базу
var uuidV4Regex = regexp.MustCompile(`^(?i)[a-f0-9]{8}-[a-f0-9]{4}-4[a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)

func isValidUUID(id string) bool {
	return uuidV4Regex.MatchString(id)
}

// parsePage читает ?page=; отсутствие или мусор означает первую страницу
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// collectFiles открывает файлы multipart-формы из поля image.
// Обычная форма без файлов ошибкой не считается.
// Закрытие файлов остаётся на вызывающем.
func (h *Handlers) collectFiles(r *http.Request, field string) ([]service.UploadFile, []func() error, error) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return []service.UploadFile{}, []func() error{}, nil
		}
		return nil, nil, err
	}

	files := []service.UploadFile{}
	closers := []func() error{}

	if r.MultipartForm == nil {
		return files, closers, nil
	}

	for _, fileHeader := range r.MultipartForm.File[field] {
		file, err := fileHeader.Open()
		if err != nil {
			for _, closeFn := range closers {
				closeFn()
			}
			return nil, nil, err
		}

		files = append(files, service.UploadFile{
			Name:    fileHeader.Filename,
			Size:    fileHeader.Size,
			Content: file,
		})
		closers = append(closers, file.Close)
	}

	return files, closers, nil
}

func closeAll(closers []func() error) {
	for _, closeFn := range closers {
		closeFn()
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, "circleapp API", nil)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, "OK", nil)
}
