// Package validation provides input validation with error collection.
//
// It supports struct tag validation (using the validator library) for
// configuration types and programmatic validation for request handling.
//
// # Struct Tag Validation
//
//	type ProviderConfig struct {
//	    APIKey  string `validate:"required"`
//	    BaseURL string `validate:"required,url"`
//	}
//	err := validation.ValidateStruct(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("recording", filename)
//	err := v.Validate()
package validation
