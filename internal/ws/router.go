package ws

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"courier/internal/models"
	"courier/internal/store"
)

// Router turns client intents into store writes and live pushes. The
// ordering rule is persist-before-push: nothing is announced that is not
// durably stored, and recipient liveness is re-checked at push time
// because it can change while a write is pending.
type Router struct {
	store store.Store
	hub   *Hub
}

func NewRouter(s store.Store, hub *Hub) *Router {
	return &Router{store: s, hub: hub}
}

// HandleEvent dispatches one decoded intent from an active session.
// Unknown events are logged and dropped.
func (rt *Router) HandleEvent(userID int, evt Event) {
	switch evt.Event {
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			rt.sendError(userID, "Malformed sendMessage payload")
			return
		}
		rt.SendMessage(userID, p)
	case EventMarkMessagesAsRead:
		var p MarkReadPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			rt.sendError(userID, "Malformed markMessagesAsRead payload")
			return
		}
		rt.MarkMessagesRead(userID, p.ContactID)
	case EventGetUnreadCounts:
		rt.UnreadCounts(userID)
	case EventSendFriendRequest:
		var p FriendRequestPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			rt.sendError(userID, "Malformed sendFriendRequest payload")
			return
		}
		rt.SendFriendRequest(userID, p.ReceiverID)
	case EventAcceptFriendRequest:
		var p AcceptFriendPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			rt.sendError(userID, "Malformed acceptFriendRequest payload")
			return
		}
		rt.AcceptFriendRequest(userID, p.RequestID)
	default:
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"event":   evt.Event,
		}).Warn("unknown event dropped")
	}
}

// SendMessage persists a message and fans it out. The store write marks
// it delivered; the live push to the receiver is best effort on top of
// that.
func (rt *Router) SendMessage(senderID int, p SendMessagePayload) {
	if p.Content == "" && p.MediaURL == "" {
		rt.sendError(senderID, "Message needs content or media")
		return
	}
	if p.MediaURL != "" && !p.MediaType.Valid() {
		rt.sendError(senderID, "Unknown media type")
		return
	}

	msg := &models.Message{
		SenderID:     senderID,
		ReceiverID:   p.ReceiverID,
		Content:      p.Content,
		MediaURL:     p.MediaURL,
		MediaType:    p.MediaType,
		ThumbnailURL: p.ThumbnailURL,
		IsDelivered:  true,
	}
	if err := rt.store.CreateMessage(msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"sender_id":   senderID,
			"receiver_id": p.ReceiverID,
		}).Error("persist message")
		rt.sendError(senderID, "Failed to send message")
		return
	}

	rt.hub.SendToUser(p.ReceiverID, EventNewMessage, msg)
	rt.hub.SendToUser(senderID, EventMessageSent, MessageSentPayload{
		MessageID:   msg.ID,
		IsDelivered: true,
	})
}

// MarkMessagesRead flips every unread message from the contact to the
// reader and notifies the contact. The notice is fire and forget; an
// offline contact simply misses it.
func (rt *Router) MarkMessagesRead(readerID, contactID int) {
	count, err := rt.store.MarkMessagesRead(contactID, readerID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reader_id":  readerID,
			"contact_id": contactID,
		}).Error("mark messages read")
		return
	}
	logrus.WithFields(logrus.Fields{
		"reader_id":  readerID,
		"contact_id": contactID,
		"count":      count,
	}).Info("messages marked read")

	rt.hub.SendToUser(contactID, EventMessagesRead, MessagesReadPayload{By: readerID})
}

// UnreadCounts pushes the per-sender unread tally back to the requester.
func (rt *Router) UnreadCounts(userID int) {
	counts, err := rt.store.UnreadCountsBySender(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("unread counts")
		rt.sendError(userID, "Failed to get unread counts")
		return
	}
	if counts == nil {
		counts = []models.UnreadCount{}
	}
	rt.hub.SendToUser(userID, EventUnreadCounts, UnreadCountsPayload{Counts: counts})
}

// SendFriendRequest records a pending edge and notifies the receiver. A
// duplicate request, or one between existing contacts, is a silent no-op.
func (rt *Router) SendFriendRequest(senderID, receiverID int) {
	if _, err := rt.store.GetUserByID(receiverID); err != nil {
		rt.sendError(senderID, "User not found")
		return
	}

	pending, err := rt.store.HasFriendRequest(senderID, receiverID)
	if err != nil {
		logrus.WithError(err).Error("check friend request")
		rt.sendError(senderID, "Failed to send friend request")
		return
	}
	if pending {
		return
	}
	contacts, err := rt.store.AreContacts(senderID, receiverID)
	if err != nil {
		logrus.WithError(err).Error("check contacts")
		rt.sendError(senderID, "Failed to send friend request")
		return
	}
	if contacts {
		return
	}

	if err := rt.store.CreateFriendRequest(senderID, receiverID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"sender_id":   senderID,
			"receiver_id": receiverID,
		}).Error("persist friend request")
		rt.sendError(senderID, "Failed to send friend request")
		return
	}

	rt.hub.SendToUser(receiverID, EventNewFriendRequest, NewFriendRequestPayload{SenderID: senderID})
}

// AcceptFriendRequest consumes a pending edge, makes the contact edges
// symmetric, and notifies both parties.
func (rt *Router) AcceptFriendRequest(userID, requestID int) {
	existed, err := rt.store.DeleteFriendRequest(requestID, userID)
	if err != nil {
		logrus.WithError(err).Error("delete friend request")
		rt.sendError(userID, "Failed to accept friend request")
		return
	}
	if !existed {
		rt.sendError(userID, "No pending friend request")
		return
	}

	if err := rt.store.AddContact(userID, requestID); err != nil {
		logrus.WithError(err).Error("add contact")
		rt.sendError(userID, "Failed to accept friend request")
		return
	}
	if err := rt.store.AddContact(requestID, userID); err != nil {
		logrus.WithError(err).Error("add contact")
		rt.sendError(userID, "Failed to accept friend request")
		return
	}

	rt.hub.SendToUser(requestID, EventFriendRequestAccepted, FriendRequestAcceptedPayload{UserID: userID})
	rt.hub.SendToUser(userID, EventFriendRequestAccepted, FriendRequestAcceptedPayload{RequestID: requestID})
}

func (rt *Router) sendError(userID int, message string) {
	rt.hub.SendToUser(userID, EventError, ErrorPayload{Message: message})
}
