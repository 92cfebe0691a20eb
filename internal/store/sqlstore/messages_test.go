package sqlstore

import (
	"testing"

	"courier/internal/models"
)

func TestCreateMessageAssignsID(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	msg := &models.Message{
		SenderID:    alice.ID,
		ReceiverID:  bob.ID,
		Content:     "hello",
		IsDelivered: true,
	}
	if err := testStore.CreateMessage(msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if msg.ID == 0 {
		t.Error("Expected non-zero message ID")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestMessagesBetweenIsSymmetricAndOrdered(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")

	for i, m := range []struct {
		from, to int
		content  string
	}{
		{alice.ID, bob.ID, "first"},
		{bob.ID, alice.ID, "second"},
		{alice.ID, carol.ID, "unrelated"},
	} {
		msg := &models.Message{SenderID: m.from, ReceiverID: m.to, Content: m.content, IsDelivered: true}
		if err := testStore.CreateMessage(msg); err != nil {
			t.Fatalf("CreateMessage %d failed: %v", i, err)
		}
	}

	messages, err := testStore.MessagesBetween(alice.ID, bob.ID, 1, 50)
	if err != nil {
		t.Fatalf("MessagesBetween failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "first" || messages[1].Content != "second" {
		t.Errorf("Messages out of order: %q, %q", messages[0].Content, messages[1].Content)
	}

	// Same result regardless of argument order.
	reversed, err := testStore.MessagesBetween(bob.ID, alice.ID, 1, 50)
	if err != nil {
		t.Fatalf("MessagesBetween reversed failed: %v", err)
	}
	if len(reversed) != 2 {
		t.Errorf("Expected 2 messages for reversed pair, got %d", len(reversed))
	}
}

func TestMessagesBetweenPagination(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	for i := 0; i < 5; i++ {
		msg := &models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "m", IsDelivered: true}
		if err := testStore.CreateMessage(msg); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	page1, _ := testStore.MessagesBetween(alice.ID, bob.ID, 1, 2)
	page3, _ := testStore.MessagesBetween(alice.ID, bob.ID, 3, 2)
	if len(page1) != 2 {
		t.Errorf("Expected 2 messages on page 1, got %d", len(page1))
	}
	if len(page3) != 1 {
		t.Errorf("Expected 1 message on page 3, got %d", len(page3))
	}
}

func TestMarkMessagesRead(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	for i := 0; i < 3; i++ {
		msg := &models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Content: "m", IsDelivered: true}
		if err := testStore.CreateMessage(msg); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	count, err := testStore.MarkMessagesRead(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("MarkMessagesRead failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 rows affected, got %d", count)
	}

	// Second pass affects nothing.
	count, err = testStore.MarkMessagesRead(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("MarkMessagesRead failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows affected on second pass, got %d", count)
	}
}

func TestUnreadCountsBySender(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")

	for i := 0; i < 2; i++ {
		testStore.CreateMessage(&models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Content: "m", IsDelivered: true})
	}
	testStore.CreateMessage(&models.Message{SenderID: carol.ID, ReceiverID: alice.ID, Content: "m", IsDelivered: true})
	read := &models.Message{SenderID: carol.ID, ReceiverID: alice.ID, Content: "m", IsDelivered: true, IsRead: true}
	testStore.CreateMessage(read)

	counts, err := testStore.UnreadCountsBySender(alice.ID)
	if err != nil {
		t.Fatalf("UnreadCountsBySender failed: %v", err)
	}

	totals := map[int]int{}
	for _, c := range counts {
		totals[c.SenderID] = c.Count
	}
	if totals[bob.ID] != 2 {
		t.Errorf("Expected 2 unread from bob, got %d", totals[bob.ID])
	}
	if totals[carol.ID] != 1 {
		t.Errorf("Expected 1 unread from carol, got %d", totals[carol.ID])
	}
}

func TestCreateMediaMessage(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	msg := &models.Message{
		SenderID:    alice.ID,
		ReceiverID:  bob.ID,
		MediaURL:    "/uploads/pic.png",
		MediaType:   models.MediaImage,
		IsDelivered: true,
	}
	if err := testStore.CreateMessage(msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	messages, err := testStore.MessagesBetween(alice.ID, bob.ID, 1, 10)
	if err != nil {
		t.Fatalf("MessagesBetween failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].MediaURL != "/uploads/pic.png" {
		t.Errorf("Expected media URL to round-trip, got '%s'", messages[0].MediaURL)
	}
	if messages[0].MediaType != models.MediaImage {
		t.Errorf("Expected media type image, got '%s'", messages[0].MediaType)
	}
	if messages[0].Content != "" {
		t.Errorf("Expected empty content, got '%s'", messages[0].Content)
	}
}
