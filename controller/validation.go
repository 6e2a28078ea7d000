package controller

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/scenesmith/scenesmith/common/image"
)

// The dataurl rule validates base64 data-URL fields at bind time, before
// any payload decoding happens.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dataurl", func(fl validator.FieldLevel) bool {
			return image.IsDataURL(fl.Field().String())
		})
	}
}
