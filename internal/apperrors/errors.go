package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("пользователь не найден")
	ErrThreadNotFound = errors.New("тред не найден")
	ErrReplyNotFound  = errors.New("ответ не найден")
	ErrPageNotFound   = errors.New("страница не найдена")
	ErrForbidden      = errors.New("доступ запрещен")
	ErrEmailTaken     = errors.New("пользователь с таким email уже существует")
	ErrSelfFollow     = errors.New("нельзя подписаться на самого себя")
)

// ValidationError - ошибка проверки входных данных, клиенту уходит 400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ошибка валидации: %s", e.Message)
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CacheCorruptionError - закешированный документ не декодируется.
// Запись вычищается и страница перечитывается из базы.
type CacheCorruptionError struct {
	Key string
	Err error
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("поврежденная запись кеша %s: %v", e.Key, e.Err)
}

func (e *CacheCorruptionError) Unwrap() error {
	return e.Err
}

// IsNotFound - все варианты "не найдено" в одном месте, чтобы хендлеры не перечисляли
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrThreadNotFound) ||
		errors.Is(err, ErrReplyNotFound) ||
		errors.Is(err, ErrPageNotFound)
}
