package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/usecase/machine"
	"plantops/pkg/utils"
)

type MachineHandler struct {
	service *machine.Service
}

func NewMachineHandler(service *machine.Service) *MachineHandler {
	return &MachineHandler{service: service}
}

// RegisterReadRoutes mounts routes available to every authenticated role.
func (h *MachineHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	machines := router.Group("/machines")
	{
		machines.GET("", h.ListMachines)
		machines.GET("/count", h.CountMachines)
		machines.GET("/:id", h.GetMachine)
	}
}

// RegisterManagerRoutes mounts routes for managers and above.
func (h *MachineHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	machines := router.Group("/machines")
	{
		machines.POST("", h.CreateMachine)
		machines.PUT("/:id", h.UpdateMachine)
		machines.POST("/:id/image", h.UploadImage)
	}
}

// RegisterAdminRoutes mounts routes for superadmins and admins.
func (h *MachineHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	machines := router.Group("/machines")
	{
		machines.DELETE("/:id", h.DeleteMachine)
	}
}

func (h *MachineHandler) CreateMachine(c *gin.Context) {
	var req machine.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Code = utils.SanitizeString(req.Code)

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Machine created successfully", resp)
}

func (h *MachineHandler) GetMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid machine ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), machineID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine retrieved successfully", resp)
}

func (h *MachineHandler) ListMachines(c *gin.Context) {
	var req machine.ListMachinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machines retrieved successfully", resp)
}

func (h *MachineHandler) CountMachines(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine count retrieved successfully", gin.H{"count": count})
}

func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid machine ID")
		return
	}

	var req machine.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		req.Name = &name
	}
	if req.Code != nil {
		code := utils.SanitizeString(*req.Code)
		req.Code = &code
	}

	resp, err := h.service.Update(c.Request.Context(), machineID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine updated successfully", resp)
}

func (h *MachineHandler) UploadImage(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid machine ID")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), machineID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine image uploaded successfully", resp)
}

func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid machine ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), machineID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine deleted successfully", nil)
}
