package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/authuser-service/internal/handlers"
	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/validator"
)

func setupAuthRouter(service services.UserService) *gin.Engine {
	r := gin.New()
	authHandler := handlers.NewAuthHandler(service, testLogger())
	r.POST("/api/v1/auth/signup", authHandler.RegisterUser)
	return r
}

func signupPayload() services.RegistrationRequest {
	return services.RegistrationRequest{
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		Password:    "secret123",
		FullName:    "John Doe",
		PhoneNumber: "+5511999990000",
		TaxID:       "12345678901",
	}
}

func TestRegisterUser(t *testing.T) {
	mock := newMockUserService()
	r := setupAuthRouter(mock)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", signupPayload())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response services.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "jdoe", response.Username)
	assert.Equal(t, "ACTIVE", string(response.Status))
	assert.Equal(t, "STUDENT", string(response.Type))
}

func TestRegisterUser_UsernameConflict(t *testing.T) {
	mock := newMockUserService()
	mock.RegisterErr = services.ErrUsernameTaken
	r := setupAuthRouter(mock)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", signupPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERROR: User name already exists")
}

func TestRegisterUser_EmailConflict(t *testing.T) {
	mock := newMockUserService()
	mock.RegisterErr = services.ErrEmailTaken
	r := setupAuthRouter(mock)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", signupPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERROR: Email already exists")
}

func TestRegisterUser_ValidationError(t *testing.T) {
	mock := newMockUserService()
	mock.RegisterErr = validator.ValidationErrors{
		{Field: "username", Message: "username must be at least 4 characters", Rule: "min"},
	}
	r := setupAuthRouter(mock)

	payload := signupPayload()
	payload.Username = "jd"
	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username")
}

func TestRegisterUser_MalformedBody(t *testing.T) {
	mock := newMockUserService()
	r := setupAuthRouter(mock)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", "not-an-object")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
