package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainCredential "plantops/internal/domain/credential"
	domainIncident "plantops/internal/domain/incident"
	domainMachine "plantops/internal/domain/machine"
	domainOperation "plantops/internal/domain/operation"
	domainPerformance "plantops/internal/domain/performance"
	domainProfile "plantops/internal/domain/profile"
	domainReport "plantops/internal/domain/report"
	"plantops/internal/infrastructure/storage"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

// respondWithError maps domain and application errors onto the HTTP
// error taxonomy. Unrecognized errors become a generic 500 so internal
// detail never leaks to the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrUnauthorized),
		errors.Is(err, domainProfile.ErrProfileInactive):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())

	case errors.Is(err, domainProfile.ErrProfileNotFound),
		errors.Is(err, domainCredential.ErrCredentialNotFound),
		errors.Is(err, domainMachine.ErrMachineNotFound),
		errors.Is(err, domainOperation.ErrOperationNotFound),
		errors.Is(err, domainIncident.ErrIncidentNotFound),
		errors.Is(err, domainPerformance.ErrRecordNotFound),
		errors.Is(err, domainReport.ErrReportNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domainProfile.ErrProfileAlreadyExists),
		errors.Is(err, domainCredential.ErrDuplicateEmail),
		errors.Is(err, domainMachine.ErrMachineAlreadyExists),
		errors.Is(err, domainOperation.ErrOperationAlreadyExists),
		errors.Is(err, domainIncident.ErrAlreadyResolved):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, appErrors.ErrInvalidInput),
		errors.Is(err, appErrors.ErrInvalidEmail),
		errors.Is(err, appErrors.ErrWeakPassword),
		errors.Is(err, appErrors.ErrInvalidResetToken),
		errors.Is(err, domainProfile.ErrInvalidRole),
		errors.Is(err, domainMachine.ErrInvalidHandling),
		errors.Is(err, domainMachine.ErrInvalidStatus),
		errors.Is(err, domainOperation.ErrInvalidStatus),
		errors.Is(err, domainIncident.ErrInvalidSeverity),
		errors.Is(err, domainIncident.ErrInvalidStatus),
		errors.Is(err, domainReport.ErrInvalidType),
		errors.Is(err, domainReport.ErrInvalidPeriod),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrFileType):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, storage.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, err.Error())

	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
