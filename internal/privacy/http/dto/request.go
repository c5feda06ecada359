// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacycore/internal/validation"
)

// EnableModeRequest contains the parameters for enabling privacy mode.
type EnableModeRequest struct {
	Level string `json:"level"`
}

// Validate checks if the enable mode request is valid.
func (r *EnableModeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Level,
			validation.Required,
			customValidation.NotBlank,
			validation.In("basic", "enhanced", "maximum"),
		),
	)
}

// DecisionRequest contains the parameters for a local processing decision.
type DecisionRequest struct {
	Data     any    `json:"data"`
	DataType string `json:"data_type"`
}

// Validate checks if the decision request is valid.
func (r *DecisionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DataType,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// SensitivityRequest contains the text for a sensitivity check.
type SensitivityRequest struct {
	Text string `json:"text"`
}

// Validate checks if the sensitivity request is valid.
func (r *SensitivityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
