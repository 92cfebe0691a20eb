package models

import "time"

type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Password    string    `json:"-"`
	PublicKey   string    `json:"publicKey"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MediaType classifies message attachments.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument:
		return true
	}
	return false
}

// Message is a direct message between two users. Content and MediaURL are
// both optional but never both empty.
type Message struct {
	ID           int       `json:"id"`
	SenderID     int       `json:"senderId"`
	ReceiverID   int       `json:"receiverId"`
	Content      string    `json:"content,omitempty"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	MediaType    MediaType `json:"mediaType,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	IsDelivered  bool      `json:"isDelivered"`
	IsRead       bool      `json:"isRead"`
}

// UnreadCount is one entry of the per-sender unread tally for a receiver.
type UnreadCount struct {
	SenderID int `json:"senderId"`
	Count    int `json:"count"`
}
