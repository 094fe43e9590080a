package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"circleapp/internal/repository"
)

type threadForm struct {
	Content string `validate:"required"`
}

func (h *Handlers) GetThreads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := parsePage(r)

	threadPage, err := h.ThreadService.FindAll(r.Context(), page)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Find All Threads Success", threadPage)
}

func (h *Handlers) GetThreadsCached(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := parsePage(r)

	threadPage, fromCache, err := h.ThreadService.FindAllCached(r.Context(), page)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	message := "Find All Threads Success"
	if fromCache {
		message = "Find All CACHE Threads Success"
	}

	WriteSuccess(w, http.StatusOK, message, threadPage)
}

func (h *Handlers) GetThread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := mux.Vars(r)["threadId"]

	if !isValidUUID(threadID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	thread, err := h.ThreadService.FindByID(r.Context(), threadID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Find By ID Threads Success", thread)
}

func (h *Handlers) CreateThread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	files, closers, err := h.collectFiles(r, "image")
	if err != nil {
		WriteError(w, "Неверный формат запроса: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	form := threadForm{Content: r.FormValue("content")}

	if err := h.Validate.Struct(form); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.ThreadService.AddThread(r.Context(), repository.CreateThreadRequest{
		AuthorID: userID,
		Content:  form.Content,
	}, files)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Add Thread Success", thread)
}

// CreateThreadQueued - создание треда через очередь: ответ уходит только
// после того, как консьюмер сохранил строку, либо 202 по таймауту ожидания
func (h *Handlers) CreateThreadQueued(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	files, closers, err := h.collectFiles(r, "image")
	if err != nil {
		WriteError(w, "Неверный формат запроса: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	form := threadForm{Content: r.FormValue("content")}

	if err := h.Validate.Struct(form); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.ThreadQueue.AddThreadQueue(r.Context(), repository.CreateThreadRequest{
		AuthorID: userID,
		Content:  form.Content,
	}, files)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if result.Accepted {
		WriteSuccess(w, http.StatusAccepted, "Тред принят и будет сохранен", map[string]string{
			"requestId": result.RequestID,
		})
		return
	}

	WriteSuccess(w, http.StatusCreated, "Add Threads from Queue Success", result.Thread)
}

func (h *Handlers) UpdateThread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := mux.Vars(r)["threadId"]

	if !isValidUUID(threadID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	files, closers, err := h.collectFiles(r, "image")
	if err != nil {
		WriteError(w, "Неверный формат запроса: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	thread, err := h.ThreadService.UpdateThread(r.Context(), repository.UpdateThreadRequest{
		ThreadID: threadID,
		AuthorID: userID,
		Content:  r.FormValue("content"),
	}, files)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Update Thread Success", thread)
}

func (h *Handlers) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	threadID := mux.Vars(r)["threadId"]

	if !isValidUUID(threadID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	thread, err := h.ThreadService.DeleteThread(r.Context(), threadID, userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Delete Threads Success", thread)
}
