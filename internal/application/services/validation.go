package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cardboard/core/internal/domain/entities"
)

// NewValidator returns a validator that knows the "cardtype" rule and
// reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("cardtype", func(fl validator.FieldLevel) bool {
		return entities.CardType(fl.Field().String()).IsValid()
	})

	return v
}

// ValidationError converts a validator failure into an invalid input error
// naming the first offending field.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return entities.InvalidInput("", err.Error())
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return entities.InvalidInput(field, "is required")
	case "cardtype":
		return entities.InvalidInput(field, fmt.Sprintf("must be one of %s", cardTypeList()))
	case "min":
		return entities.InvalidInput(field, fmt.Sprintf("must be at least %s", fe.Param()))
	case "max":
		return entities.InvalidInput(field, fmt.Sprintf("must be at most %s", fe.Param()))
	default:
		return entities.InvalidInput(field, fmt.Sprintf("failed %q validation", fe.Tag()))
	}
}

func cardTypeList() string {
	names := make([]string, len(entities.CardTypes))
	for i, t := range entities.CardTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func validate(v *validator.Validate, req interface{}) error {
	if err := v.Struct(req); err != nil {
		return ValidationError(err)
	}
	return nil
}

// requireObject converts a decoded JSON value into a config, failing with an
// invalid input error on anything but an object.
func requireObject(field string, value any) (entities.Config, error) {
	cfg, err := entities.ConfigFromValue(value)
	if err != nil {
		return nil, entities.InvalidInput(field, "must be an object")
	}
	return cfg, nil
}
