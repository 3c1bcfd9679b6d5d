package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("endofpath", validateEndOfPath)
}

// validateEndOfPath accepts any name vertexpath.ParseEndOfPath understands.
func validateEndOfPath(fl validator.FieldLevel) bool {
	_, err := vertexpath.ParseEndOfPath(fl.Field().String())
	return err == nil
}

// Validate checks every section against its constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
