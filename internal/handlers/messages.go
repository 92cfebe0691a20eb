package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"courier/internal/middleware"
	"courier/internal/models"
	"courier/internal/store"
)

type MessageHandler struct {
	Store store.Store
}

// GetHistory returns one page of the conversation between the
// authenticated user and a contact, oldest first.
func (h *MessageHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	contactID, err := strconv.Atoi(mux.Vars(r)["contactID"])
	if err != nil {
		http.Error(w, "Invalid contact ID", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.Store.MessagesBetween(userID, contactID, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	json.NewEncoder(w).Encode(map[string]any{"messages": messages})
}

// GetUnreadCounts is the REST twin of the realtime getUnreadCounts intent,
// used when the client has no open socket.
func (h *MessageHandler) GetUnreadCounts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	counts, err := h.Store.UnreadCountsBySender(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if counts == nil {
		counts = []models.UnreadCount{}
	}
	json.NewEncoder(w).Encode(map[string]any{"counts": counts})
}
