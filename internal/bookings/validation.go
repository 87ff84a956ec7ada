package bookings

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// seatIDPattern matches row letter(s) + seat number, e.g. "A1", "AB12".
var seatIDPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,3}$`)

// RegisterValidations installs the custom "seatid" binding tag on gin's
// validator engine. Called once during server startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("seatid", func(fl validator.FieldLevel) bool {
			return seatIDPattern.MatchString(fl.Field().String())
		})
	}
}
