package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"circleapp/internal/repository"
	"circleapp/internal/service"
)

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := parsePage(r)

	userPage, err := h.UserService.FindAll(r.Context(), page)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Find All User Success", userPage)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["userId"]

	if !isValidUUID(userID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.FindByID(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Find By ID User Success", user)
}

func (h *Handlers) GetSuggestedUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = service.SuggestedLimit
	}

	users, err := h.UserService.FindSuggested(r.Context(), limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Get Suggested User Success", users)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		WriteError(w, "Не указано имя для поиска", http.StatusBadRequest)
		return
	}

	users, err := h.UserService.FindByName(r.Context(), name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Find By Name User Success", users)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["userId"]

	if !isValidUUID(userID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// профиль меняет только его владелец
	if userID != currentUserID {
		WriteError(w, "Нет прав для обновления этого пользователя", http.StatusForbidden)
		return
	}

	var req struct {
		Fullname string `json:"fullname"`
		Bio      string `json:"bio"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), repository.UpdateUserRequest{
		UserID:   userID,
		Fullname: req.Fullname,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Upload Data Profile Success", user)
}

func (h *Handlers) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["userId"]

	if !isValidUUID(userID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if userID != currentUserID {
		WriteError(w, "Нет прав для обновления этого пользователя", http.StatusForbidden)
		return
	}

	files, closers, err := h.collectFiles(r, "image")
	if err != nil {
		WriteError(w, "Неверный формат запроса: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	if len(files) == 0 {
		WriteError(w, "Файл не передан", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateProfilePicture(r.Context(), userID, files[0])
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Upload Picture Profile Success", user)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["userId"]

	if !isValidUUID(userID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if userID != currentUserID {
		WriteError(w, "Нет прав для удаления этого пользователя", http.StatusForbidden)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Delete User Success", nil)
}
