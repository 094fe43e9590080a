package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ToggleLike - повторный вызов тем же пользователем снимает лайк
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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

	like, liked, err := h.LikeService.Toggle(r.Context(), userID, threadID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if liked {
		WriteSuccess(w, http.StatusCreated, "Like Thread Success", like)
		return
	}

	WriteSuccess(w, http.StatusOK, "Undo Like Thread Success", nil)
}
