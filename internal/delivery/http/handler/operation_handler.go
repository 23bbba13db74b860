package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/usecase/operation"
	"plantops/pkg/utils"
)

type OperationHandler struct {
	service *operation.Service
}

func NewOperationHandler(service *operation.Service) *OperationHandler {
	return &OperationHandler{service: service}
}

// RegisterReadRoutes mounts routes available to every authenticated role.
func (h *OperationHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	operations := router.Group("/operations")
	{
		operations.GET("", h.ListOperations)
		operations.GET("/count", h.CountOperations)
		operations.GET("/:id", h.GetOperation)
	}
}

// RegisterOperatorRoutes mounts routes for operators and above. Status
// changes and attachments come from the floor.
func (h *OperationHandler) RegisterOperatorRoutes(router *gin.RouterGroup) {
	operations := router.Group("/operations")
	{
		operations.PUT("/:id/status", h.UpdateStatus)
		operations.POST("/:id/attachments", h.AddAttachment)
	}
}

// RegisterManagerRoutes mounts routes for managers and above.
func (h *OperationHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	operations := router.Group("/operations")
	{
		operations.POST("", h.CreateOperation)
		operations.PUT("/:id", h.UpdateOperation)
	}
}

// RegisterAdminRoutes mounts routes for superadmins and admins.
func (h *OperationHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	operations := router.Group("/operations")
	{
		operations.DELETE("/:id", h.DeleteOperation)
	}
}

func (h *OperationHandler) CreateOperation(c *gin.Context) {
	var req operation.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FicheID = utils.SanitizeString(req.FicheID)
	req.Title = utils.SanitizeString(req.Title)

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Operation created successfully", resp)
}

func (h *OperationHandler) GetOperation(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), operationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operation retrieved successfully", resp)
}

func (h *OperationHandler) ListOperations(c *gin.Context) {
	var req operation.ListOperationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operations retrieved successfully", resp)
}

func (h *OperationHandler) CountOperations(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operation count retrieved successfully", gin.H{"count": count})
}

func (h *OperationHandler) UpdateOperation(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	var req operation.UpdateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		req.Title = &title
	}

	resp, err := h.service.Update(c.Request.Context(), operationID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operation updated successfully", resp)
}

func (h *OperationHandler) UpdateStatus(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	var req operation.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), operationID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operation status updated successfully", resp)
}

func (h *OperationHandler) AddAttachment(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}

	resp, err := h.service.AddAttachment(c.Request.Context(), operationID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Attachment added successfully", resp)
}

func (h *OperationHandler) DeleteOperation(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), operationID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Operation deleted successfully", nil)
}
