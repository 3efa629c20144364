package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/authuser-service/internal/events"
	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
	"github.com/SAP-F-2025/authuser-service/internal/validator"
)

const userSelfLinkBase = "/api/v1/users"

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewUserService creates the user service. publisher may be nil, in which
// case domain events are skipped.
func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Register creates a new account. Username is checked before email; either
// collision is a conflict. Status and type are fixed for new accounts no
// matter what the caller sent.
func (s *userService) Register(ctx context.Context, req *RegistrationRequest) (*UserResponse, error) {
	s.logger.Debug("Registering user", "username", req.Username)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.User().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if taken {
		s.logger.Warn("Username already exists", "username", req.Username)
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		s.logger.Warn("Email already exists", "email", req.Email)
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &models.User{
		UserID:      uuid.New(),
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		TaxID:       req.TaxID,
		Password:    req.Password,
		Status:      models.StatusActive,
		Type:        models.TypeStudent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// The existence checks above race against concurrent registrations;
		// the unique indexes are the authority and a duplicate lands here.
		if repositories.IsDuplicateError(err) {
			if taken, checkErr := s.repo.User().ExistsByUsername(ctx, req.Username); checkErr == nil && taken {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully", "user_id", user.UserID)
	s.publishEvent(ctx, events.UserCreated, user)

	return s.buildUserResponse(user), nil
}

// List returns one page of users matching the filters
func (s *userService) List(ctx context.Context, filters repositories.UserFilters, page repositories.PageRequest) (*UserListResponse, error) {
	page = page.Normalize()

	users, total, err := s.repo.User().List(ctx, filters, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, s.buildUserResponse(user))
	}

	return &UserListResponse{
		Users: responses,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildUserResponse(user), nil
}

// Delete removes the record permanently
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted successfully", "user_id", id)
	s.publishEvent(ctx, events.UserDeleted, user)

	return nil
}

// UpdateProfile applies the profile view fields and refreshes the
// last-update timestamp. Identifier, username, email and creation
// timestamp are untouched.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *ProfileUpdateRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.TaxID = req.TaxID
	user.UpdatedAt = time.Now().UTC()

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated successfully", "user_id", user.UserID)
	s.publishEvent(ctx, events.UserUpdated, user)

	return s.buildUserResponse(user), nil
}

// UpdatePassword stores the new password. The stored value has to differ
// from the submitted one; the old password field is carried by the view
// but the stored value is the only guard.
func (s *userService) UpdatePassword(ctx context.Context, id uuid.UUID, req *PasswordUpdateRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	if user.Password == req.Password {
		s.logger.Warn("Mismatched old password", "user_id", id)
		return ErrPasswordMismatch
	}

	user.Password = req.Password
	user.UpdatedAt = time.Now().UTC()

	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password updated successfully", "user_id", user.UserID)
	s.publishEvent(ctx, events.UserUpdated, user)

	return nil
}

// UpdateImage sets the avatar URL and refreshes the last-update timestamp
func (s *userService) UpdateImage(ctx context.Context, id uuid.UUID, req *ImageUpdateRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ImageURL = &req.ImageURL
	user.UpdatedAt = time.Now().UTC()

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Image updated successfully", "user_id", user.UserID)
	s.publishEvent(ctx, events.UserUpdated, user)

	return s.buildUserResponse(user), nil
}

// ===== HELPERS =====

func (s *userService) getUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) saveUser(ctx context.Context, user *models.User) error {
	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *userService) buildUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		User: user,
		Links: []Link{
			{Rel: "self", Href: fmt.Sprintf("%s/%s", userSelfLinkBase, user.UserID)},
		},
	}
}

func (s *userService) publishEvent(ctx context.Context, eventType string, user *models.User) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewUserEvent(eventType, user)); err != nil {
		s.logger.Error("Failed to publish user event", "event_type", eventType, "user_id", user.UserID, "error", err)
	}
}
