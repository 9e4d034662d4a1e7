// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fiscus/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case string(models.RoleManager), string(models.RoleEmployee):
		return true
	}
	return false
}
