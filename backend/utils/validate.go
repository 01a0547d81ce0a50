package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// BindJSON parses the request body into out and validates its `validate` tags.
func BindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return BadRequest("Cannot parse JSON")
	}
	if err := validate.Struct(out); err != nil {
		return BadRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	var missing, invalid []string
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			missing = append(missing, field)
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", field, fe.Tag()))
	}
	if len(missing) > 0 {
		return "Please provide " + strings.Join(missing, ", ") + "."
	}
	return "Invalid fields: " + strings.Join(invalid, ", ")
}
