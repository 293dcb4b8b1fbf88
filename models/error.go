package models

import "fmt"

// MessageResponse is the standard JSON body for success and failure messages
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// ValidationError covers malformed, missing or mismatched input, including
// wrong or expired OTP codes
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// ConflictError covers duplicate email/mobile registrations
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

// NotFoundError covers unresolved records and unknown users
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

// AuthError covers failed credential checks
type AuthError struct {
	Message string
}

func (e AuthError) Error() string { return e.Message }

// DeliveryError covers notification dispatch failures (email or SMS)
type DeliveryError struct {
	Message string
	Cause   error
}

func (e DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e DeliveryError) Unwrap() error { return e.Cause }
