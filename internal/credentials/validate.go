package credentials

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/horecastore/storefront-e2e/internal/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("arg")
	})
	return v
}

type envArgs struct {
	Env string `arg:"env" validate:"required"`
}

type marketArgs struct {
	Env    string `arg:"env" validate:"required"`
	Market string `arg:"market" validate:"required"`
}

type personaArgs struct {
	Env     string `arg:"env" validate:"required"`
	Market  string `arg:"market" validate:"required"`
	Persona string `arg:"persona" validate:"required"`
}

// validateArgs reports every missing argument of op at once.
func validateArgs(op string, args any) error {
	err := validate.Struct(args)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Wrap(errs.Internal, op+": argument validation failed", err)
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return errs.New(errs.InvalidArgument, fmt.Sprintf(
		"%s missing required argument(s): %s. All parameters must be explicitly provided; "+
			"no implicit defaults are applied here, use the config package for defaults",
		op, strings.Join(missing, ", "),
	))
}
