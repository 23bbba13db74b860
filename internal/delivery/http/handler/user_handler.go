package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/usecase/profile"
	"plantops/pkg/utils"
)

type UserHandler struct {
	service *profile.Service
}

func NewUserHandler(service *profile.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes mounts user management routes. The caller is expected
// to wrap the group in the admin role guard.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/count", h.CountUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FullName = utils.SanitizeString(req.FullName)
	req.Email = utils.SanitizeEmail(req.Email)
	if req.PhoneNumber != nil {
		phone := utils.SanitizePhone(*req.PhoneNumber)
		req.PhoneNumber = &phone
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User created successfully", resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var req profile.ListProfilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", resp)
}

func (h *UserHandler) CountUsers(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User count retrieved successfully", gin.H{"count": count})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FullName != nil {
		name := utils.SanitizeString(*req.FullName)
		req.FullName = &name
	}
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		req.Email = &email
	}
	if req.PhoneNumber != nil {
		phone := utils.SanitizePhone(*req.PhoneNumber)
		req.PhoneNumber = &phone
	}

	resp, err := h.service.Update(c.Request.Context(), profileID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", resp)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), profileID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}
