package sqlstore

import (
	"database/sql"
	"time"

	"courier/internal/models"
)

func (s *SQLStore) CreateMessage(msg *models.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	res, err := s.db.Exec(
		`INSERT INTO messages (sender_id, receiver_id, content, media_url, media_type, thumbnail_url, created_at, is_delivered, is_read)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.SenderID, msg.ReceiverID,
		nullable(msg.Content), nullable(msg.MediaURL), nullable(string(msg.MediaType)), nullable(msg.ThumbnailURL),
		msg.Timestamp, msg.IsDelivered, msg.IsRead,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	msg.ID = int(id)
	return nil
}

// MessagesBetween returns one page of the conversation between two users,
// oldest first. Page numbers start at 1.
func (s *SQLStore) MessagesBetween(userA, userB, page, limit int) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, sender_id, receiver_id, COALESCE(content, ''), COALESCE(media_url, ''), COALESCE(media_type, ''), COALESCE(thumbnail_url, ''), created_at, is_delivered, is_read
		 FROM messages
		 WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		 ORDER BY created_at ASC, id ASC
		 LIMIT ? OFFSET ?`,
		userA, userB, userB, userA, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var mediaType string
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.MediaURL, &mediaType, &m.ThumbnailURL, &m.Timestamp, &m.IsDelivered, &m.IsRead); err != nil {
			return nil, err
		}
		m.MediaType = models.MediaType(mediaType)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkMessagesRead flips every unread message from senderID to receiverID
// and reports how many rows changed.
func (s *SQLStore) MarkMessagesRead(senderID, receiverID int) (int64, error) {
	res, err := s.db.Exec(
		"UPDATE messages SET is_read = TRUE WHERE sender_id = ? AND receiver_id = ? AND is_read = FALSE",
		senderID, receiverID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) UnreadCountsBySender(receiverID int) ([]models.UnreadCount, error) {
	rows, err := s.db.Query(
		"SELECT sender_id, COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = FALSE GROUP BY sender_id",
		receiverID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.UnreadCount
	for rows.Next() {
		var c models.UnreadCount
		if err := rows.Scan(&c.SenderID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
