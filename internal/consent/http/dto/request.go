// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacycore/internal/validation"
)

// ConsentRequest contains the parameters for requesting a consent decision.
type ConsentRequest struct {
	UserID   string `json:"user_id"`
	DataType string `json:"data_type"`
	Purpose  string `json:"purpose"`
}

// Validate checks if the consent request is valid.
func (r *ConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.DataType,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Purpose,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
	)
}

// RevokeConsentRequest contains the parameters for revoking a consent.
type RevokeConsentRequest struct {
	UserID   string `json:"user_id"`
	DataType string `json:"data_type"`
}

// Validate checks if the revoke consent request is valid.
func (r *RevokeConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.DataType,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// CreateAccessRequest contains the parameters for a third-party data access
// request.
type CreateAccessRequest struct {
	Requester string   `json:"requester"`
	DataTypes []string `json:"data_types"`
	Purpose   string   `json:"purpose"`
}

// Validate checks if the access request is valid.
func (r *CreateAccessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Requester,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.DataTypes,
			validation.Required,
			validation.Length(1, 100),
			validation.Each(customValidation.NotBlank),
		),
		validation.Field(&r.Purpose,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
	)
}

// DecideAccessRequest contains the parameters for approving or denying an
// access request.
type DecideAccessRequest struct {
	DecidedBy string `json:"decided_by"`
}

// Validate checks if the decision request is valid.
func (r *DecideAccessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DecidedBy,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
