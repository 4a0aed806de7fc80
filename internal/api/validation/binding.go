package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindings installs the custom rules on gin's validator engine so DTOs
// can use them as binding tags ("username", "slug").
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return Username(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return Slug(fl.Field().String()) == nil
	})
}
