package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("profile_role", validateProfileRole); err != nil {
		return
	}
	if err := validate.RegisterValidation("handling_method", validateHandlingMethod); err != nil {
		return
	}
	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateProfileRole(fl validator.FieldLevel) bool {
	role := strings.ToLower(fl.Field().String())
	validRoles := []string{"superadmin", "admin", "manager", "operator", "viewer"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validateHandlingMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()
	validMethods := []string{"manual", "semi-automatic", "automatic"}

	for _, validMethod := range validMethods {
		if method == validMethod {
			return true
		}
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	re := regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	return re.MatchString(phone)
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}
