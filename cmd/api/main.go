package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"circleapp/cmd/app"
	"circleapp/internal/config"
	handlers "circleapp/internal/handler"
	"circleapp/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer logger.Sync()

	deps := app.App(cfg, logger)
	defer deps.DB.CloseDB()
	defer deps.PageCache.Close()
	defer deps.Producer.Close()

	// фоновый консьюмер очереди тредов
	deps.Consumer.Start(context.Background())
	defer deps.Consumer.Stop()

	handler := handlers.NewHandlers(deps.Services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler)
	router.HandleFunc("/health", handlers.HealthHandler)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	router.HandleFunc("/api/users", handler.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/search", handler.SearchUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/suggested", handler.GetSuggestedUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{userId}", handler.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{userId}", handler.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/api/users/{userId}", handler.DeleteUser).Methods(http.MethodDelete)
	router.HandleFunc("/api/users/{userId}/picture", handler.UploadProfilePicture).Methods(http.MethodPost)

	router.HandleFunc("/api/threads", handler.GetThreads).Methods(http.MethodGet)
	router.HandleFunc("/api/threads", handler.CreateThread).Methods(http.MethodPost)
	router.HandleFunc("/api/threads/cached", handler.GetThreadsCached).Methods(http.MethodGet)
	router.HandleFunc("/api/threads/queue", handler.CreateThreadQueued).Methods(http.MethodPost)
	router.HandleFunc("/api/threads/{threadId}", handler.GetThread).Methods(http.MethodGet)
	router.HandleFunc("/api/threads/{threadId}", handler.UpdateThread).Methods(http.MethodPut)
	router.HandleFunc("/api/threads/{threadId}", handler.DeleteThread).Methods(http.MethodDelete)

	router.HandleFunc("/api/threads/{threadId}/replies", handler.CreateReply).Methods(http.MethodPost)
	router.HandleFunc("/api/replies/{replyId}", handler.UpdateReply).Methods(http.MethodPut)
	router.HandleFunc("/api/replies/{replyId}", handler.DeleteReply).Methods(http.MethodDelete)

	router.HandleFunc("/api/threads/{threadId}/like", handler.ToggleLike).Methods(http.MethodPost)
	router.HandleFunc("/api/follows/{followingId}", handler.ToggleFollow).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
