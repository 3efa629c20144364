package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListUsers lists users with pagination and optional filtering
// @Summary List users
// @Description Get a paginated list of users, optionally filtered by email substring, status or type
// @Tags users
// @Accept json
// @Produce json
// @Param page query int false "Page number, zero-based (default: 0)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param sort query string false "Sort column (default: user_id)"
// @Param direction query string false "Sort direction: asc or desc (default: asc)"
// @Param email query string false "Email substring filter"
// @Param status query string false "Filter by status (ACTIVE, BLOCKED)"
// @Param type query string false "Filter by type (STUDENT, INSTRUCTOR, ADMIN)"
// @Success 200 {object} services.UserListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	filters := h.parseUserFilters(c)
	page := h.parsePageRequest(c)

	response, err := h.service.List(c.Request.Context(), filters, page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOneUser retrieves a user by ID
// @Summary Get user by ID
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} services.UserResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{userId} [get]
func (h *UserHandler) GetOneUser(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteUser removes a user by ID
// @Summary Delete user
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", userID)

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}

// UpdateUser updates the profile fields of a user
// @Summary Update user profile
// @Description Update full name, phone number and tax id. Username and email are immutable.
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body services.ProfileUpdateRequest true "Profile update request"
// @Success 200 {object} services.UserResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating user", "user_id", userID)

	response, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdatePassword changes the password of a user
// @Summary Update user password
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body services.PasswordUpdateRequest true "Password update request"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Conflict - mismatched old password"
// @Router /users/{userId}/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req services.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating password", "user_id", userID)

	if err := h.service.UpdatePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// UpdateImage changes the avatar image URL of a user
// @Summary Update user avatar image
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body services.ImageUpdateRequest true "Image update request"
// @Success 200 {object} services.UserResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{userId}/image [put]
func (h *UserHandler) UpdateImage(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req services.ImageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating image", "user_id", userID)

	response, err := h.service.UpdateImage(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportUsers downloads the filtered user set as an xlsx workbook
// @Summary Export users
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param email query string false "Email substring filter"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/export [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users")

	filters := h.parseUserFilters(c)

	workbook, err := h.service.ExportUsers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ===== HELPER METHODS =====

func (h *UserHandler) parseUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid user ID",
		})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	filters := repositories.UserFilters{
		Email: c.Query("email"),
	}

	if status := models.UserStatus(c.Query("status")); models.ValidStatus(status) {
		filters.Status = &status
	}
	if userType := models.UserType(c.Query("type")); models.ValidType(userType) {
		filters.Type = &userType
	}

	return filters
}

func (h *UserHandler) parsePageRequest(c *gin.Context) repositories.PageRequest {
	page := repositories.PageRequest{
		SortBy:  c.Query("sort"),
		SortDir: c.Query("direction"),
		Size:    repositories.DefaultPageSize,
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page.Page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= repositories.MaxPageSize {
			page.Size = s
		}
	}

	return page
}
