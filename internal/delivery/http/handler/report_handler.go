package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/middleware"
	"plantops/internal/usecase/report"
	"plantops/pkg/utils"
)

type ReportHandler struct {
	service *report.Service
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterReadRoutes mounts routes available to every authenticated role.
func (h *ReportHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("", h.ListReports)
		reports.GET("/count", h.CountReports)
		reports.GET("/:id", h.GetReport)
	}
}

// RegisterManagerRoutes mounts routes for managers and above.
func (h *ReportHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.POST("", h.CreateReport)
		reports.PUT("/:id", h.UpdateReport)
		reports.POST("/:id/file", h.UploadFile)
	}
}

// RegisterAdminRoutes mounts routes for superadmins and admins.
func (h *ReportHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.DELETE("/:id", h.DeleteReport)
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	generatedBy, ok := middleware.GetProfileID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req report.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = utils.SanitizeString(req.Title)

	resp, err := h.service.Create(c.Request.Context(), generatedBy, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Report created successfully", resp)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), reportID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report retrieved successfully", resp)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	var req report.ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reports retrieved successfully", resp)
}

func (h *ReportHandler) CountReports(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report count retrieved successfully", gin.H{"count": count})
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req report.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		req.Title = &title
	}

	resp, err := h.service.Update(c.Request.Context(), reportID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report updated successfully", resp)
}

func (h *ReportHandler) UploadFile(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}

	resp, err := h.service.UploadFile(c.Request.Context(), reportID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report file uploaded successfully", resp)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), reportID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report deleted successfully", nil)
}
