package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/usecase/performance"
	"plantops/pkg/utils"
)

type PerformanceHandler struct {
	service *performance.Service
}

func NewPerformanceHandler(service *performance.Service) *PerformanceHandler {
	return &PerformanceHandler{service: service}
}

// RegisterReadRoutes mounts routes available to every authenticated role.
func (h *PerformanceHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	records := router.Group("/performances")
	{
		records.GET("", h.ListRecords)
		records.GET("/count", h.CountRecords)
		records.GET("/:id", h.GetRecord)
	}
}

// RegisterOperatorRoutes mounts routes for operators and above. The
// operators themselves record their shift figures.
func (h *PerformanceHandler) RegisterOperatorRoutes(router *gin.RouterGroup) {
	records := router.Group("/performances")
	{
		records.POST("", h.CreateRecord)
		records.PUT("/:id", h.UpdateRecord)
	}
}

// RegisterAdminRoutes mounts routes for superadmins and admins.
func (h *PerformanceHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	records := router.Group("/performances")
	{
		records.DELETE("/:id", h.DeleteRecord)
	}
}

func (h *PerformanceHandler) CreateRecord(c *gin.Context) {
	var req performance.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Performance record created successfully", resp)
}

func (h *PerformanceHandler) GetRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Performance record retrieved successfully", resp)
}

func (h *PerformanceHandler) ListRecords(c *gin.Context) {
	var req performance.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Performance records retrieved successfully", resp)
}

func (h *PerformanceHandler) CountRecords(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Performance record count retrieved successfully", gin.H{"count": count})
}

func (h *PerformanceHandler) UpdateRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req performance.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), recordID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Performance record updated successfully", resp)
}

func (h *PerformanceHandler) DeleteRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), recordID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Performance record deleted successfully", nil)
}
