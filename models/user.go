package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User holds the structure for the users collection in mongo. Federated
// accounts carry no password, which makes password sign-in impossible for
// them.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FullName string             `json:"fullName" bson:"fullName"`
	Email    string             `json:"email" bson:"email"`
	Mobile   string             `json:"mobile" bson:"mobile,omitempty"`
	Password string             `json:"-" bson:"password,omitempty"`
	Role     string             `json:"role" bson:"role"`

	IsEmailVerified  bool `json:"isEmailVerified" bson:"isEmailVerified"`
	IsMobileVerified bool `json:"isMobileVerified" bson:"isMobileVerified"`

	// password-reset sub-state, independent of signup verification
	ResetOtp      string     `json:"-" bson:"resetOtp,omitempty"`
	OtpExpires    *time.Time `json:"-" bson:"otpExpires,omitempty"`
	IsOtpVerified bool       `json:"-" bson:"isOtpVerified"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
