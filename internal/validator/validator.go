// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"sync"

	"endpage/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

// Get returns a validator with the custom rules registered, for use outside
// of request binding (services, CLI).
func Get() *validator.Validate {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		registerAll(standalone)
	})
	return standalone
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return Get().Var(s, "required,email") == nil
}

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("tone", validateTone)
	_ = v.RegisterValidation("background_type", validateBackgroundType)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTone(fl validator.FieldLevel) bool {
	return models.Tone(fl.Field().String()).IsValid()
}

func validateBackgroundType(fl validator.FieldLevel) bool {
	return models.BackgroundType(fl.Field().String()).IsValid()
}
