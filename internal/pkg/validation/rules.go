package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafael/coursehub/internal/pkg/videoid"
)

// RegisterCustomRules registers application validation tags on gin's binding
// validator. Must be called once at startup before routes are served.
func RegisterCustomRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("videourl", validateVideoURL); err != nil {
		return err
	}

	return nil
}

// validateVideoURL backs the `videourl` binding tag: the field must yield an
// 11-character video id through videoid.Extract.
func validateVideoURL(fl validator.FieldLevel) bool {
	_, err := videoid.Extract(fl.Field().String())
	return err == nil
}
