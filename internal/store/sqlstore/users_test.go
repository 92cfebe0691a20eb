package sqlstore

import (
	"strings"
	"testing"

	"courier/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	created := createTestUser(t, "alice")
	if created.ID == 0 {
		t.Error("Expected non-zero user ID after create")
	}

	user, err := testStore.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("Expected ID %d, got %d", created.ID, user.ID)
	}
	if user.PublicKey != "pubkey" {
		t.Errorf("Expected public key to round-trip, got '%s'", user.PublicKey)
	}

	byID, err := testStore.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("Expected username 'alice', got '%s'", byID.Username)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	createTestUser(t, "alice")

	dup := &models.User{
		Username:    "alice",
		Email:       "other@example.com",
		PhoneNumber: "555-0000",
		Password:    "hashed",
	}
	if err := testStore.CreateUser(dup); err == nil {
		t.Error("Expected error creating duplicate username")
	}
}

func TestSearchUsersMasksEmail(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	createTestUser(t, "alice")
	createTestUser(t, "alicia")
	createTestUser(t, "bob")

	users, err := testStore.SearchUsers("ali")
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if !strings.Contains(u.Email, "*") {
			t.Errorf("Expected masked email, got '%s'", u.Email)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	if got := maskEmail("alice@example.com"); got != "al***@example.com" {
		t.Errorf("Unexpected mask: %s", got)
	}
	if got := maskEmail(""); got != "" {
		t.Errorf("Expected empty, got %s", got)
	}
	if got := maskEmail("not-an-email"); got != "not-an-email" {
		t.Errorf("Expected passthrough, got %s", got)
	}
}
