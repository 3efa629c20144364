package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.UserService
}

func NewAuthHandler(service services.UserService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterUser creates a new user account
// @Summary Register a new user
// @Description Create a user account; username and email must be free. New accounts always start as ACTIVE students.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegistrationRequest true "Registration request"
// @Success 201 {object} services.UserResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Conflict - username or email already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering user", "username", req.Username)

	response, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
