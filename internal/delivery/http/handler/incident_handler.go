package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/middleware"
	"plantops/internal/usecase/incident"
	"plantops/pkg/utils"
)

type IncidentHandler struct {
	service *incident.Service
}

func NewIncidentHandler(service *incident.Service) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// RegisterReadRoutes mounts routes available to every authenticated role.
func (h *IncidentHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	incidents := router.Group("/incidents")
	{
		incidents.GET("", h.ListIncidents)
		incidents.GET("/count", h.CountIncidents)
		incidents.GET("/:id", h.GetIncident)
	}
}

// RegisterOperatorRoutes mounts routes for operators and above. Anyone
// on the floor can report an incident and attach evidence.
func (h *IncidentHandler) RegisterOperatorRoutes(router *gin.RouterGroup) {
	incidents := router.Group("/incidents")
	{
		incidents.POST("", h.CreateIncident)
		incidents.POST("/:id/attachments", h.AddAttachment)
	}
}

// RegisterManagerRoutes mounts routes for managers and above.
func (h *IncidentHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	incidents := router.Group("/incidents")
	{
		incidents.PUT("/:id", h.UpdateIncident)
		incidents.POST("/:id/resolve", h.ResolveIncident)
	}
}

// RegisterAdminRoutes mounts routes for superadmins and admins.
func (h *IncidentHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	incidents := router.Group("/incidents")
	{
		incidents.DELETE("/:id", h.DeleteIncident)
	}
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	reporterID, ok := middleware.GetProfileID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req incident.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	req.Description = utils.SanitizeText(req.Description)

	resp, err := h.service.Create(c.Request.Context(), reporterID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Incident created successfully", resp)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), incidentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident retrieved successfully", resp)
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	var req incident.ListIncidentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incidents retrieved successfully", resp)
}

func (h *IncidentHandler) CountIncidents(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident count retrieved successfully", gin.H{"count": count})
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	var req incident.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		req.Title = &title
	}
	if req.Description != nil {
		description := utils.SanitizeText(*req.Description)
		req.Description = &description
	}

	resp, err := h.service.Update(c.Request.Context(), incidentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident updated successfully", resp)
}

func (h *IncidentHandler) ResolveIncident(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	resp, err := h.service.Resolve(c.Request.Context(), incidentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident resolved successfully", resp)
}

func (h *IncidentHandler) AddAttachment(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}

	resp, err := h.service.AddAttachment(c.Request.Context(), incidentID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Attachment added successfully", resp)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), incidentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident deleted successfully", nil)
}
