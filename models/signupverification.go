package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignupVerification holds the structure for the signupverifications
// collection in mongo. A single record can accumulate both an email and a
// mobile verification across separate OTP requests; records are purged by a
// TTL index 24 hours after creation regardless of state.
type SignupVerification struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FullName string             `json:"fullName" bson:"fullName"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	Mobile   string             `json:"mobile,omitempty" bson:"mobile,omitempty"`

	EmailOtp        string     `json:"-" bson:"emailOtp,omitempty"`
	EmailOtpExpires *time.Time `json:"-" bson:"emailOtpExpires,omitempty"`
	EmailVerified   bool       `json:"emailVerified" bson:"emailVerified"`

	MobileOtp        string     `json:"-" bson:"mobileOtp,omitempty"`
	MobileOtpExpires *time.Time `json:"-" bson:"mobileOtpExpires,omitempty"`
	MobileVerified   bool       `json:"mobileVerified" bson:"mobileVerified"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
