package ws

import (
	"encoding/json"
	"time"

	"courier/internal/models"
)

// Client-to-server event names.
const (
	EventSendMessage         = "sendMessage"
	EventMarkMessagesAsRead  = "markMessagesAsRead"
	EventGetUnreadCounts     = "getUnreadCounts"
	EventSendFriendRequest   = "sendFriendRequest"
	EventAcceptFriendRequest = "acceptFriendRequest"
)

// Server-to-client event names.
const (
	EventNewMessage            = "newMessage"
	EventMessageSent           = "messageSent"
	EventMessagesRead          = "messagesRead"
	EventUnreadCounts          = "unreadCounts"
	EventNewFriendRequest      = "newFriendRequest"
	EventFriendRequestAccepted = "friendRequestAccepted"
	EventUserStatus            = "userStatus"
	EventError                 = "error"
)

// Event is the envelope for everything crossing the websocket.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeEvent(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: name, Data: data})
}

// Inbound intent payloads.

type SendMessagePayload struct {
	ReceiverID   int              `json:"receiverId"`
	Content      string           `json:"content,omitempty"`
	MediaURL     string           `json:"mediaUrl,omitempty"`
	MediaType    models.MediaType `json:"mediaType,omitempty"`
	ThumbnailURL string           `json:"thumbnailUrl,omitempty"`
}

type MarkReadPayload struct {
	ContactID int `json:"contactId"`
}

type FriendRequestPayload struct {
	ReceiverID int `json:"receiverId"`
}

type AcceptFriendPayload struct {
	RequestID int `json:"requestId"`
}

// Outbound push payloads.

type MessageSentPayload struct {
	MessageID   int  `json:"messageId"`
	IsDelivered bool `json:"isDelivered"`
}

type MessagesReadPayload struct {
	By int `json:"by"`
}

type UnreadCountsPayload struct {
	Counts []models.UnreadCount `json:"counts"`
}

type NewFriendRequestPayload struct {
	SenderID int `json:"senderId"`
}

// FriendRequestAcceptedPayload carries the counterpart's id: the requester
// receives the accepter as userId, the accepter receives requestId.
type FriendRequestAcceptedPayload struct {
	UserID    int `json:"userId,omitempty"`
	RequestID int `json:"requestId,omitempty"`
}

type UserStatusPayload struct {
	UserID   int        `json:"userId"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
