package models

import (
	"regexp"
	"strings"
)

// Channel kinds accepted by the verification endpoints
const (
	ChannelEmail  = "email"
	ChannelMobile = "mobile"
)

var (
	emailPattern  = regexp.MustCompile(`^(([^<>()[\]\\.,;:\s@"]+(\.[^<>()[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Channel is the contact-channel variant of a verification request. Each
// variant carries only its own contact value and its own validation rule, so
// there is no discriminator string with conditionally-required fields.
type Channel interface {
	Kind() string
	Address() string
	Validate() error
}

// EmailChannel is the email variant of a verification request
type EmailChannel string

// Kind returns ChannelEmail
func (c EmailChannel) Kind() string { return ChannelEmail }

// Address returns the email address
func (c EmailChannel) Address() string { return string(c) }

// Validate checks presence and format of the email address
func (c EmailChannel) Validate() error {
	if c == "" {
		return ValidationError{Message: "Email is required"}
	}
	if !emailPattern.MatchString(strings.ToLower(string(c))) {
		return ValidationError{Message: "Invalid email format"}
	}
	return nil
}

// MobileChannel is the mobile variant of a verification request
type MobileChannel string

// Kind returns ChannelMobile
func (c MobileChannel) Kind() string { return ChannelMobile }

// Address returns the mobile number
func (c MobileChannel) Address() string { return string(c) }

// Validate checks presence and format (exact 10 digits) of the mobile number
func (c MobileChannel) Validate() error {
	if c == "" {
		return ValidationError{Message: "Mobile number is required"}
	}
	if !mobilePattern.MatchString(string(c)) {
		return ValidationError{Message: "Invalid mobile number format"}
	}
	return nil
}

// NewChannel picks the channel variant for the requested kind, carrying only
// the relevant contact value
func NewChannel(kind, email, mobile string) (Channel, error) {
	switch kind {
	case ChannelEmail:
		return EmailChannel(email), nil
	case ChannelMobile:
		return MobileChannel(mobile), nil
	default:
		return nil, ValidationError{Message: "type must be email or mobile"}
	}
}
