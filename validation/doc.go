// Package validation checks configuration structs with go-playground/validator
// struct tags and reports failures as an INVALID_INPUT AppError carrying one
// entry per offending field.
//
//	type Config struct {
//	    APIKey   string `mapstructure:"api_key" validate:"required"`
//	    Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
//	}
//	if err := validation.Validate(cfg); err != nil { ... }
//
// Field names in messages follow the mapstructure (then json) tag, so they
// match the keys a user writes in config.yml.
package validation
