package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/authuser-service/internal/handlers"
	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserService returns canned results, or the configured error per call
type mockUserService struct {
	RegisterErr error
	GetErr      error
	DeleteErr   error
	ProfileErr  error
	PasswordErr error
	ImageErr    error
	ListErr     error
	ExportErr   error

	User *services.UserResponse
}

func newMockUserService() *mockUserService {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &models.User{
		UserID:    uuid.New(),
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FullName:  "John Doe",
		Status:    models.StatusActive,
		Type:      models.TypeStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return &mockUserService{
		User: &services.UserResponse{
			User:  user,
			Links: []services.Link{{Rel: "self", Href: "/api/v1/users/" + user.UserID.String()}},
		},
	}
}

var _ services.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(context.Context, *services.RegistrationRequest) (*services.UserResponse, error) {
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	return m.User, nil
}

func (m *mockUserService) List(context.Context, repositories.UserFilters, repositories.PageRequest) (*services.UserListResponse, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return &services.UserListResponse{
		Users: []*services.UserResponse{m.User},
		Total: 1,
		Page:  0,
		Size:  10,
	}, nil
}

func (m *mockUserService) GetByID(context.Context, uuid.UUID) (*services.UserResponse, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.User, nil
}

func (m *mockUserService) Delete(context.Context, uuid.UUID) error {
	return m.DeleteErr
}

func (m *mockUserService) UpdateProfile(context.Context, uuid.UUID, *services.ProfileUpdateRequest) (*services.UserResponse, error) {
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	return m.User, nil
}

func (m *mockUserService) UpdatePassword(context.Context, uuid.UUID, *services.PasswordUpdateRequest) error {
	return m.PasswordErr
}

func (m *mockUserService) UpdateImage(context.Context, uuid.UUID, *services.ImageUpdateRequest) (*services.UserResponse, error) {
	if m.ImageErr != nil {
		return nil, m.ImageErr
	}
	return m.User, nil
}

func (m *mockUserService) ExportUsers(context.Context, repositories.UserFilters) ([]byte, error) {
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	return []byte("PK"), nil
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
}

func setupRouter(service services.UserService) *gin.Engine {
	r := gin.New()
	logger := testLogger()

	userHandler := handlers.NewUserHandler(service, logger)
	users := r.Group("/api/v1/users")
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/export", userHandler.ExportUsers)
		users.GET("/:userId", userHandler.GetOneUser)
		users.DELETE("/:userId", userHandler.DeleteUser)
		users.PUT("/:userId", userHandler.UpdateUser)
		users.PUT("/:userId/password", userHandler.UpdatePassword)
		users.PUT("/:userId/image", userHandler.UpdateImage)
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestListUsers(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	w := doJSON(r, http.MethodGet, "/api/v1/users?page=0&size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response services.UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Total)
	require.Len(t, response.Users, 1)
	assert.Equal(t, "jdoe", response.Users[0].Username)
	require.Len(t, response.Users[0].Links, 1)
	assert.Equal(t, "self", response.Users[0].Links[0].Rel)
}

func TestGetOneUser(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	w := doJSON(r, http.MethodGet, "/api/v1/users/"+mock.User.UserID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jdoe")
	// Password never leaks into responses
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetOneUser_NotFound(t *testing.T) {
	mock := newMockUserService()
	mock.GetErr = services.ErrUserNotFound
	r := setupRouter(mock)

	w := doJSON(r, http.MethodGet, "/api/v1/users/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestGetOneUser_InvalidID(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	w := doJSON(r, http.MethodGet, "/api/v1/users/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID")
}

func TestDeleteUser(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	w := doJSON(r, http.MethodDelete, "/api/v1/users/"+mock.User.UserID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted")
}

func TestDeleteUser_NotFound(t *testing.T) {
	mock := newMockUserService()
	mock.DeleteErr = services.ErrUserNotFound
	r := setupRouter(mock)

	w := doJSON(r, http.MethodDelete, "/api/v1/users/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	payload := services.ProfileUpdateRequest{
		FullName:    "Johnathan Doe",
		PhoneNumber: "+5511888880000",
		TaxID:       "10987654321",
	}
	w := doJSON(r, http.MethodPut, "/api/v1/users/"+mock.User.UserID.String(), payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jdoe")
}

func TestUpdatePassword(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	payload := services.PasswordUpdateRequest{OldPassword: "secret123", Password: "newsecret456"}
	w := doJSON(r, http.MethodPut, "/api/v1/users/"+mock.User.UserID.String()+"/password", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password updated successfully")
}

func TestUpdatePassword_Conflict(t *testing.T) {
	mock := newMockUserService()
	mock.PasswordErr = services.ErrPasswordMismatch
	r := setupRouter(mock)

	payload := services.PasswordUpdateRequest{OldPassword: "secret123", Password: "secret123"}
	w := doJSON(r, http.MethodPut, "/api/v1/users/"+mock.User.UserID.String()+"/password", payload)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Mismatched old password")
}

func TestUpdateImage(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	payload := services.ImageUpdateRequest{ImageURL: "https://cdn.example.com/avatars/jdoe.png"}
	w := doJSON(r, http.MethodPut, "/api/v1/users/"+mock.User.UserID.String()+"/image", payload)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportUsers(t *testing.T) {
	mock := newMockUserService()
	r := setupRouter(mock)

	w := doJSON(r, http.MethodGet, "/api/v1/users/export", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
}
