package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courier/internal/auth"
	"courier/internal/middleware"
	"courier/internal/models"
	"courier/internal/store/sqlstore"
)

func TestGetContactsAndFriendRequests(t *testing.T) {
	st, err := sqlstore.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	verifier := auth.NewVerifier("test-secret", time.Hour)
	handler := &ContactHandler{Store: st}

	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	st.AddContact(alice.ID, bob.ID)
	st.CreateFriendRequest(carol.ID, alice.ID)

	token, _ := verifier.Issue(alice.ID)

	req, _ := http.NewRequest("GET", "/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth(verifier, http.HandlerFunc(handler.GetContacts)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var contactsResp struct {
		Contacts []models.User `json:"contacts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &contactsResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(contactsResp.Contacts) != 1 || contactsResp.Contacts[0].Username != "bob" {
		t.Errorf("Expected [bob], got %+v", contactsResp.Contacts)
	}

	req, _ = http.NewRequest("GET", "/friends/requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	middleware.Auth(verifier, http.HandlerFunc(handler.GetFriendRequests)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var requestsResp struct {
		FriendRequests []models.User `json:"friendRequests"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &requestsResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(requestsResp.FriendRequests) != 1 || requestsResp.FriendRequests[0].Username != "carol" {
		t.Errorf("Expected [carol], got %+v", requestsResp.FriendRequests)
	}
}
