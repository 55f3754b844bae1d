package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// nameParamRe matches the natural keys accepted in route parameters and in
// the categories query filter.
var nameParamRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,50}$`)

// newValidator builds the validator shared by all handlers, with the
// password complexity rule registered. Validation messages report the wire
// name of the field, not the Go one.
func newValidator() *validator.Validate {
	v := validator.New()
	// Registration cannot fail for a well-formed tag name.
	_ = v.RegisterValidation("passwd", validPassword)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validPassword enforces the sign-up password policy: 8 to 1024 characters
// with at least one lowercase, one uppercase, one digit and one symbol.
func validPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 || len(s) > 1024 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// firstError formats the first validation failure; handlers never report
// more than one at a time.
func firstError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
	return "Validation failed"
}

// nameParamError validates a natural-key route parameter, returning an
// error message or "".
func nameParamError(param, value string) string {
	if !nameParamRe.MatchString(value) {
		return fmt.Sprintf("%q must be an alphanumeric string between 3 and 50 characters", param)
	}
	return ""
}

func conflictMessage(field string) string {
	return strings.ToUpper(field[:1]) + field[1:] + " already exist!"
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal Server Error!",
	})
}

// serviceError maps the error taxonomy shared by all entity services:
// conflicts to field-specific 400s, missing records to 404, anything else to
// a generic 500 that leaks no detail.
func serviceError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if ce, ok := repositories.AsConflict(err); ok {
		return badRequest(c, conflictMessage(ce.Field))
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(c, notFoundMsg)
	}
	log.Printf("Unhandled service error: %v", err)
	return internalError(c)
}
