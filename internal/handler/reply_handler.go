package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type replyForm struct {
	Content string `validate:"required"`
}

func (h *Handlers) CreateReply(w http.ResponseWriter, r *http.Request) {
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

	files, closers, err := h.collectFiles(r, "image")
	if err != nil {
		WriteError(w, "Неверный формат запроса: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	form := replyForm{Content: r.FormValue("content")}

	if err := h.Validate.Struct(form); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.ReplyService.AddReply(r.Context(), threadID, userID, form.Content, files)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Reply Thread Success", reply)
}

func (h *Handlers) UpdateReply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	replyID := mux.Vars(r)["replyId"]

	if !isValidUUID(replyID) {
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

	reply, err := h.ReplyService.UpdateReply(r.Context(), replyID, userID, r.FormValue("content"), files)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Update Reply Success", reply)
}

func (h *Handlers) DeleteReply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	replyID := mux.Vars(r)["replyId"]

	if !isValidUUID(replyID) {
		WriteError(w, "Invalid UUID", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	reply, err := h.ReplyService.DeleteReply(r.Context(), replyID, userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Delete Reply Success", reply)
}
