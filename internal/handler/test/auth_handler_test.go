package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"circleapp/internal/apperrors"
	"circleapp/internal/config"
	handlers "circleapp/internal/handler"
	"circleapp/internal/models"
)

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "Успешная регистрация",
			requestBody: map[string]interface{}{
				"fullname": "Ivan Petrov",
				"email":    "ivan@example.com",
				"password": "password123",
			},
			mockSetup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, mock.Anything).
					Return(&models.User{
						UserID:   uuid.New().String(),
						Username: "user_abc12345_Ivan_Petrov",
						Fullname: "Ivan Petrov",
						Email:    "ivan@example.com",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Email уже занят",
			requestBody: map[string]interface{}{
				"fullname": "Ivan Petrov",
				"email":    "taken@example.com",
				"password": "password123",
			},
			mockSetup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, mock.Anything).
					Return(nil, apperrors.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Короткий пароль отсекается валидацией",
			requestBody: map[string]interface{}{
				"fullname": "Ivan Petrov",
				"email":    "ivan@example.com",
				"password": "short",
			},
			mockSetup:      func(svc *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Невалидный email",
			requestBody: map[string]interface{}{
				"fullname": "Ivan Petrov",
				"email":    "not-an-email",
				"password": "password123",
			},
			mockSetup:      func(svc *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.mockSetup(authService)

			handler := &handlers.Handlers{
				AuthService: authService,
				Cfg:         &config.Config{},
				Validate:    validator.New(),
			}

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			authService.AssertExpectations(t)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("Успешный вход возвращает пару токенов", func(t *testing.T) {
		authService := new(MockAuthService)
		authService.On("Login", mock.Anything, "ivan@example.com", "password123").
			Return(&models.User{Email: "ivan@example.com"}, "access", "refresh", nil)

		handler := &handlers.Handlers{
			AuthService: authService,
			Cfg:         &config.Config{},
			Validate:    validator.New(),
		}

		body, _ := json.Marshal(map[string]string{
			"email":    "ivan@example.com",
			"password": "password123",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))

		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response handlers.Response
		json.Unmarshal(rr.Body.Bytes(), &response)

		data := response.Data.(map[string]interface{})
		assert.Equal(t, "access", data["accessToken"])
		assert.Equal(t, "refresh", data["refreshToken"])
	})

	t.Run("Неверные учётные данные - 401", func(t *testing.T) {
		authService := new(MockAuthService)
		authService.On("Login", mock.Anything, "ivan@example.com", "wrong").
			Return(nil, "", "", assert.AnError)

		handler := &handlers.Handlers{
			AuthService: authService,
			Cfg:         &config.Config{},
			Validate:    validator.New(),
		}

		body, _ := json.Marshal(map[string]string{
			"email":    "ivan@example.com",
			"password": "wrong",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))

		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
