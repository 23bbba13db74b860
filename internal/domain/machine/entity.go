package machine

import (
	"time"

	"github.com/google/uuid"
)

type HandlingMethod string

const (
	HandlingManual        HandlingMethod = "manual"
	HandlingSemiAutomatic HandlingMethod = "semi-automatic"
	HandlingAutomatic     HandlingMethod = "automatic"
)

func ValidHandlingMethods() []HandlingMethod {
	return []HandlingMethod{HandlingManual, HandlingSemiAutomatic, HandlingAutomatic}
}

func IsValidHandlingMethod(m HandlingMethod) bool {
	for _, valid := range ValidHandlingMethods() {
		if m == valid {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusOperational Status = "operational"
	StatusMaintenance Status = "maintenance"
	StatusDown        Status = "down"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusDown:
		return true
	}
	return false
}

// Machine represents a production machine on the shop floor.
type Machine struct {
	ID             uuid.UUID
	Name           string
	Code           string
	HandlingMethod HandlingMethod
	Location       *string
	Status         Status
	CommissionedAt *time.Time
	ImagePath      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
