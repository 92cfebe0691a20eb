package sqlstore

import (
	"courier/internal/models"
)

func (s *SQLStore) CreateFriendRequest(senderID, receiverID int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO friend_requests (sender_id, receiver_id) VALUES (?, ?)",
		senderID, receiverID,
	)
	return err
}

func (s *SQLStore) HasFriendRequest(senderID, receiverID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM friend_requests WHERE sender_id = ? AND receiver_id = ?)",
		senderID, receiverID,
	).Scan(&exists)
	return exists, err
}

// DeleteFriendRequest removes a pending edge and reports whether it existed.
func (s *SQLStore) DeleteFriendRequest(senderID, receiverID int) (bool, error) {
	res, err := s.db.Exec(
		"DELETE FROM friend_requests WHERE sender_id = ? AND receiver_id = ?",
		senderID, receiverID,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *SQLStore) FriendRequestsFor(userID int) ([]models.User, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.username, u.email
		 FROM users u
		 JOIN friend_requests fr ON u.id = fr.sender_id
		 WHERE fr.receiver_id = ?
		 ORDER BY fr.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		u.Email = maskEmail(u.Email)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLStore) AddContact(userID, contactID int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO contacts (user_id, contact_id) VALUES (?, ?)",
		userID, contactID,
	)
	return err
}

func (s *SQLStore) AreContacts(userID, contactID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM contacts WHERE user_id = ? AND contact_id = ?)",
		userID, contactID,
	).Scan(&exists)
	return exists, err
}

func (s *SQLStore) Contacts(userID int) ([]models.User, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.username, u.email, COALESCE(u.public_key, '')
		 FROM users u
		 JOIN contacts c ON u.id = c.contact_id
		 WHERE c.user_id = ?
		 ORDER BY u.username ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PublicKey); err != nil {
			return nil, err
		}
		u.Email = maskEmail(u.Email)
		users = append(users, u)
	}
	return users, rows.Err()
}
