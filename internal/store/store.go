package store

import "courier/internal/models"

type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	SearchUsers(query string) ([]models.User, error)

	// Message operations
	CreateMessage(msg *models.Message) error
	MessagesBetween(userA, userB, page, limit int) ([]models.Message, error)
	MarkMessagesRead(senderID, receiverID int) (int64, error)
	UnreadCountsBySender(receiverID int) ([]models.UnreadCount, error)

	// Friend request edges
	CreateFriendRequest(senderID, receiverID int) error
	HasFriendRequest(senderID, receiverID int) (bool, error)
	DeleteFriendRequest(senderID, receiverID int) (bool, error)
	FriendRequestsFor(userID int) ([]models.User, error)

	// Contact edges
	AddContact(userID, contactID int) error
	AreContacts(userID, contactID int) (bool, error)
	Contacts(userID int) ([]models.User, error)
}
