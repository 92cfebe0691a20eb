package handlers

import (
	"encoding/json"
	"net/http"

	"courier/internal/middleware"
	"courier/internal/models"
	"courier/internal/store"
)

type ContactHandler struct {
	Store store.Store
}

func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	contacts, err := h.Store.Contacts(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if contacts == nil {
		contacts = []models.User{}
	}
	json.NewEncoder(w).Encode(map[string]any{"contacts": contacts})
}

// GetFriendRequests lists the users with a pending request to the
// authenticated user.
func (h *ContactHandler) GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	requests, err := h.Store.FriendRequestsFor(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.User{}
	}
	json.NewEncoder(w).Encode(map[string]any{"friendRequests": requests})
}
