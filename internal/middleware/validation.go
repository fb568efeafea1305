package middleware

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rehabtrack/rehab-api/internal/model"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("rehabcategory", validCategory)
}

// validCategory accepts the fixed workout category vocabulary,
// case-insensitively.
func validCategory(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, c := range model.WorkoutCategories {
		if value == c {
			return true
		}
	}
	return false
}
