// Package validation checks configuration and input values.
//
// Struct tag validation (go-playground/validator) covers field-level rules
// declared on config structs; the programmatic Validator collects
// cross-field rules such as "gemini needs its own key".
//
//	type SpeechConfig struct {
//	    Voice string `mapstructure:"voice" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
//	v := validation.New()
//	v.Custom(cfg.Model != "", "summarizer.model", "is required")
//	err := v.Validate()
package validation
