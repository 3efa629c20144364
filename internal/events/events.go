package events

import (
	"time"

	"github.com/SAP-F-2025/authuser-service/internal/models"
)

// Event types published to the user topic
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// Event is the envelope shared by every message this service publishes
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// UserEventData carries the user fields sibling services care about.
// Password is never part of an event payload.
type UserEventData struct {
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Email    string            `json:"email"`
	FullName string            `json:"full_name"`
	Status   models.UserStatus `json:"status"`
	Type     models.UserType   `json:"type"`
}

// NewUserEvent builds an event envelope for the given user and event type
func NewUserEvent(eventType string, user *models.User) *Event {
	return &Event{
		Type:      eventType,
		Source:    "authuser-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data: UserEventData{
			UserID:   user.UserID.String(),
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
			Status:   user.Status,
			Type:     user.Type,
		},
	}
}
