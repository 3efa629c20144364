package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
	"github.com/SAP-F-2025/authuser-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request views from the validator package
type RegistrationRequest = validator.UserRegistrationRequest
type ProfileUpdateRequest = validator.UserProfileUpdateRequest
type PasswordUpdateRequest = validator.UserPasswordUpdateRequest
type ImageUpdateRequest = validator.UserImageUpdateRequest

// Link is a navigational reference attached to list items
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type UserResponse struct {
	*models.User
	Links []Link `json:"links,omitempty"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// ===== SERVICE ERRORS =====

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("user name already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrPasswordMismatch = errors.New("mismatched old password")
)

// ===== SERVICE INTERFACES =====

// UserService is the application contract over the user store
type UserService interface {
	Register(ctx context.Context, req *RegistrationRequest) (*UserResponse, error)
	List(ctx context.Context, filters repositories.UserFilters, page repositories.PageRequest) (*UserListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateProfile(ctx context.Context, id uuid.UUID, req *ProfileUpdateRequest) (*UserResponse, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, req *PasswordUpdateRequest) error
	UpdateImage(ctx context.Context, id uuid.UUID, req *ImageUpdateRequest) (*UserResponse, error)

	// ExportUsers renders the filtered user set as an xlsx workbook
	ExportUsers(ctx context.Context, filters repositories.UserFilters) ([]byte, error)
}

// ServiceManager wires and owns the service instances
type ServiceManager interface {
	User() UserService
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
