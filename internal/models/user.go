package models

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	StatusActive  UserStatus = "ACTIVE"
	StatusBlocked UserStatus = "BLOCKED"
)

type UserType string

const (
	TypeStudent    UserType = "STUDENT"
	TypeInstructor UserType = "INSTRUCTOR"
	TypeAdmin      UserType = "ADMIN"
)

// User is the persisted account entity. UserID is assigned at creation and
// never changes; Username and Email are unique across the whole user set,
// enforced by the database indexes.
type User struct {
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;primaryKey"`
	Username    string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName    string     `json:"full_name" gorm:"size:150"`
	PhoneNumber string     `json:"phone_number" gorm:"size:20"`
	TaxID       string     `json:"tax_id" gorm:"size:20"`
	Password    string     `json:"-" gorm:"not null;size:255"`
	ImageURL    *string    `json:"image_url" gorm:"size:500"`
	Status      UserStatus `json:"status" gorm:"not null;size:20"`
	Type        UserType   `json:"type" gorm:"not null;size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ValidStatus reports whether s is a known account status.
func ValidStatus(s UserStatus) bool {
	return s == StatusActive || s == StatusBlocked
}

// ValidType reports whether t is a known account type.
func ValidType(t UserType) bool {
	return t == TypeStudent || t == TypeInstructor || t == TypeAdmin
}
