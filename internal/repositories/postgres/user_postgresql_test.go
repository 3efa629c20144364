package postgres

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
)

// The API serialization hides the password, so the cache entry has to
// carry it itself or a cache-hit read would hand an empty password to the
// next save.
func TestCachedUserKeepsPassword(t *testing.T) {
	user := models.User{
		UserID:   uuid.New(),
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "secret123",
		Status:   models.StatusActive,
		Type:     models.TypeStudent,
	}

	data, err := json.Marshal(cachedUser{User: user, Password: user.Password})
	require.NoError(t, err)

	var got cachedUser
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "secret123", got.Password)
	assert.Equal(t, user.Username, got.User.Username)
}

func TestListCacheKey(t *testing.T) {
	status := models.StatusActive

	base := listCacheKey(repositories.UserFilters{}, repositories.PageRequest{}.Normalize())
	filtered := listCacheKey(repositories.UserFilters{Email: "erin", Status: &status}, repositories.PageRequest{}.Normalize())
	paged := listCacheKey(repositories.UserFilters{}, repositories.PageRequest{Page: 1}.Normalize())

	// Distinct queries never share a cache entry
	assert.NotEqual(t, base, filtered)
	assert.NotEqual(t, base, paged)

	// The same query always maps to the same entry
	assert.Equal(t, base, listCacheKey(repositories.UserFilters{}, repositories.PageRequest{}.Normalize()))
}
