package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Album object type validation
	validate.RegisterValidation("object_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"photo", "sticker", "text", "drawing"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})

	// Crop shape validation
	validate.RegisterValidation("crop_shape", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		validShapes := []string{"rectangle", "circle", "freehand"}
		for _, v := range validShapes {
			if s == v {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier format"
		case "url":
			errors[field] = "Invalid URL format"
		case "object_type":
			errors[field] = "Invalid type. Must be: photo, sticker, text, or drawing"
		case "crop_shape":
			errors[field] = "Invalid shape. Must be: rectangle, circle, or freehand"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
