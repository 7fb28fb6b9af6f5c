package models

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

func validateRecord(kind Kind, name string, r any) error {
	if err := getValidator().Struct(r); err != nil {
		return fmt.Errorf("invalid %s %q: %w", kind, name, err)
	}
	return nil
}
