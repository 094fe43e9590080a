package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ToggleFollow - повторный вызов тем же пользователем отменяет подписку
func (h *Handlers) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	followingID := mux.Vars(r)["followingId"]

	if !isValidUUID(followingID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	followerID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	follow, followed, err := h.FollowService.Toggle(r.Context(), followerID, followingID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if followed {
		WriteSuccess(w, http.StatusCreated, "Follow User Success", follow)
		return
	}

	WriteSuccess(w, http.StatusOK, "Unfollow User Success", nil)
}
