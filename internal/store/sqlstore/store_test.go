package sqlstore

import (
	"testing"

	"courier/internal/models"
)

var testStore *SQLStore

func SetupTestDB(t *testing.T) {
	var err error
	testStore, err = New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
}

func TeardownTestDB() {
	if testStore != nil {
		testStore.db.Close()
		testStore = nil
	}
}

func createTestUser(t *testing.T, username string) *models.User {
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		PhoneNumber: "555-" + username,
		Password:    "hashed",
		PublicKey:   "pubkey",
	}
	if err := testStore.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}
