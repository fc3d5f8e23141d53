package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ameerdental/clinic-api/internal/model"
)

// RegisterValidations adds the domain rules to gin's binding validator.
// "fdi" accepts the 32 two-digit FDI tooth codes.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("fdi", func(fl validator.FieldLevel) bool {
			return model.ValidToothID(fl.Field().String())
		})
	}
}
