// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacycore/internal/validation"
)

// LogEventRequest contains the parameters for appending a security event.
// Any collaborator may append audit entries, so the event name is free-form.
type LogEventRequest struct {
	Event    string         `json:"event"`
	Details  map[string]any `json:"details"`
	Severity string         `json:"severity"`
}

// Validate checks if the log event request is valid.
func (r *LogEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Event,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Severity,
			validation.Required,
			validation.In("low", "medium", "high"),
		),
	)
}
