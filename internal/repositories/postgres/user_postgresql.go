package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/authuser-service/internal/cache"
	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
)

// sortColumns whitelists the columns a caller may sort the user list by
var sortColumns = map[string]string{
	"user_id":    "user_id",
	"username":   "username",
	"email":      "email",
	"full_name":  "full_name",
	"status":     "status",
	"type":       "type",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a new user record and invalidates the existence caches.
// A unique-index violation on username or email surfaces as a duplicate
// error (see repositories.IsDuplicateError).
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if repositories.IsDuplicateError(err) {
			// The existence flags cached before the losing insert are stale;
			// drop them so the caller's conflict re-check reads the database.
			cache.InvalidateUserCache(ctx, u.cacheManager, user.UserID.String(), user.Username, user.Email)
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	cache.InvalidateUserCache(ctx, u.cacheManager, user.UserID.String(), user.Username, user.Email)

	return nil
}

// cachedUser carries the full record through the JSON cache round trip.
// The model hides Password from serialization, so the cache entry stores
// it in a sibling field; dropping it here would let a later save wipe the
// stored password.
type cachedUser struct {
	models.User
	Password string `json:"password"`
}

// GetByID retrieves a user by ID with read-through caching
func (u *UserPostgreSQL) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var wrapped cachedUser

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &wrapped, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, "user_id = ?", id).Error; err != nil {
			return nil, err
		}
		return cachedUser{User: dbUser, Password: dbUser.Password}, nil
	})
	if err != nil {
		return nil, err
	}

	user := wrapped.User
	user.Password = wrapped.Password
	return &user, nil
}

// Update persists every mutable column of the record and drops stale cache
// entries. Identifier, username, email and created_at never change here.
func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	result := u.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"full_name":    user.FullName,
			"phone_number": user.PhoneNumber,
			"tax_id":       user.TaxID,
			"password":     user.Password,
			"image_url":    user.ImageURL,
			"status":       user.Status,
			"type":         user.Type,
			"updated_at":   user.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateUserCache(ctx, u.cacheManager, user.UserID.String(), user.Username, user.Email)

	return nil
}

// Delete hard deletes a user record
func (u *UserPostgreSQL) Delete(ctx context.Context, id uuid.UUID) error {
	// Fetch first so the username/email existence caches can be dropped
	var user models.User
	if err := u.db.WithContext(ctx).Select("user_id, username, email").First(&user, "user_id = ?", id).Error; err != nil {
		if repositories.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to get user before delete: %w", err)
	}

	if err := u.db.WithContext(ctx).Delete(&models.User{}, "user_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	cache.InvalidateUserCache(ctx, u.cacheManager, id.String(), user.Username, user.Email)

	return nil
}

// userPage is the cached shape of one list result
type userPage struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// List retrieves one page of users with filters, sort and total count.
// Pages are cached per filter/page combination; every write drops the
// whole list cache (see cache.InvalidateUserCache).
func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters, page repositories.PageRequest) ([]*models.User, int64, error) {
	page = page.Normalize()

	var cached userPage
	err := u.cacheManager.User.CacheOrExecute(ctx, listCacheKey(filters, page), &cached, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		users, total, err := u.listFromDB(ctx, filters, page)
		if err != nil {
			return nil, err
		}
		return userPage{Users: users, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return cached.Users, cached.Total, nil
}

func (u *UserPostgreSQL) listFromDB(ctx context.Context, filters repositories.UserFilters, page repositories.PageRequest) ([]*models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})
	query = u.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = repositories.DefaultSortBy
	}

	var users []*models.User
	err := query.
		Order(fmt.Sprintf("%s %s", column, page.SortDir)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func listCacheKey(filters repositories.UserFilters, page repositories.PageRequest) string {
	status, userType := "", ""
	if filters.Status != nil {
		status = string(*filters.Status)
	}
	if filters.Type != nil {
		userType = string(*filters.Type)
	}
	return fmt.Sprintf("list:%s|%s|%s|%d|%d|%s|%s",
		filters.Email, status, userType, page.Page, page.Size, page.SortBy, page.SortDir)
}

// ExistsByUsername checks username presence with a short-lived cache
func (u *UserPostgreSQL) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return u.cachedExists(ctx, fmt.Sprintf("username:%s", username), "username = ?", username)
}

// ExistsByEmail checks email presence with a short-lived cache
func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return u.cachedExists(ctx, fmt.Sprintf("email:%s", email), "email = ?", email)
}

func (u *UserPostgreSQL) cachedExists(ctx context.Context, cacheKey, condition string, value string) (bool, error) {
	var exists bool
	err := u.cacheManager.Exists.CacheOrExecute(ctx, cacheKey, &exists, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		if err := u.db.WithContext(ctx).Model(&models.User{}).Where(condition, value).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check existence: %w", err)
		}
		return count > 0, nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (u *UserPostgreSQL) applyFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Email != "" {
		query = query.Where("email LIKE ?", "%"+filters.Email+"%")
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	return query
}
