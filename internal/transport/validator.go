package transport

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var slugRE = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validator adapts go-playground/validator to echo's Validator interface.
// It registers the "slug" rule used by category payloads.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRE.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

func (vd *Validator) Validate(i any) error {
	if err := vd.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
