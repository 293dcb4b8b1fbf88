package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gaurav-singhh/LocaLinkBackend/api"
	"github.com/gaurav-singhh/LocaLinkBackend/config"
	"github.com/gaurav-singhh/LocaLinkBackend/databases"
	"github.com/gaurav-singhh/LocaLinkBackend/models"
	"github.com/gaurav-singhh/LocaLinkBackend/notifications"
	templates "github.com/gaurav-singhh/LocaLinkBackend/templates/html"
)

// Verification handles the two-stage OTP-gated signup verification flow
type Verification struct {
	SVDB databases.SignupVerificationDatabase
	UDB  databases.UserDatabase
	Mail notifications.Mailer
	SMS  notifications.SMSSender
}

type sendVerificationOtpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Type     string `json:"type"`
}

type sendVerificationOtpResponse struct {
	Message        string `json:"message"`
	Type           string `json:"type"`
	VerificationID string `json:"verificationId"`
}

// SendVerificationOtpHandler issues an OTP for one contact channel of an
// in-flight signup. The record is located by OR-matching any supplied
// contact value, so a single record accumulates both channels across
// requests; the merge always overwrites fullName and the supplied contact
// fields, and resets only the requested channel's verified flag.
func (v Verification) SendVerificationOtpHandler(w http.ResponseWriter, r *http.Request) {
	var body sendVerificationOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if body.FullName == "" {
		config.WriteError(w, models.ValidationError{Message: "Full name is required"})
		return
	}
	channel, err := models.NewChannel(body.Type, body.Email, body.Mobile)
	if err != nil {
		config.WriteError(w, err)
		return
	}
	if err := channel.Validate(); err != nil {
		config.WriteError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// reject before touching any pending record if a confirmed user already
	// owns this contact
	_, err = v.UDB.FindOne(ctx, bson.M{channel.Kind(): channel.Address()})
	if err == nil {
		label := "Email"
		if channel.Kind() == models.ChannelMobile {
			label = "Mobile number"
		}
		config.WriteError(w, models.ConflictError{Message: label + " already registered"})
		return
	}
	if err != mongo.ErrNoDocuments {
		config.WriteError(w, err)
		return
	}

	// locate-or-create by OR-matching the non-empty identifying fields only
	var match []bson.M
	if body.Email != "" {
		match = append(match, bson.M{"email": body.Email})
	}
	if body.Mobile != "" {
		match = append(match, bson.M{"mobile": body.Mobile})
	}
	verification, err := v.SVDB.FindOne(ctx, bson.M{"$or": match})
	if err != nil && err != mongo.ErrNoDocuments {
		config.WriteError(w, err)
		return
	}

	otp, expires := newOTP(signupOtpWidth)
	if err := v.dispatchOtp(channel, otp); err != nil {
		config.WriteError(w, err)
		return
	}

	now := time.Now()
	if verification == nil {
		record := models.SignupVerification{
			FullName:  body.FullName,
			Email:     body.Email,
			Mobile:    body.Mobile,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyChannelOtp(&record, channel.Kind(), otp, expires)
		created, err := v.SVDB.InsertOne(ctx, record)
		if err != nil {
			config.WriteError(w, err)
			return
		}
		verification = created
	} else {
		set := bson.M{
			"fullName":  body.FullName,
			"updatedAt": now,
		}
		if body.Email != "" {
			set["email"] = body.Email
		}
		if body.Mobile != "" {
			set["mobile"] = body.Mobile
		}
		if channel.Kind() == models.ChannelEmail {
			set["emailOtp"] = otp
			set["emailOtpExpires"] = expires
			set["emailVerified"] = false
		} else {
			set["mobileOtp"] = otp
			set["mobileOtpExpires"] = expires
			set["mobileVerified"] = false
		}
		if err := v.SVDB.UpdateOne(ctx, bson.M{"_id": verification.ID}, bson.M{"$set": set}); err != nil {
			config.WriteError(w, err)
			return
		}
	}

	config.WriteJSON(w, http.StatusOK, sendVerificationOtpResponse{
		Message:        fmt.Sprintf("Verification code sent to your %s", channel.Kind()),
		Type:           channel.Kind(),
		VerificationID: verification.ID.Hex(),
	})
}

// dispatchOtp sends the code over the requested channel. Delivery failures on
// either channel fail the request; there is no fire-and-forget path.
func (v Verification) dispatchOtp(channel models.Channel, otp string) error {
	if channel.Kind() == models.ChannelEmail {
		plain := fmt.Sprintf("Your LocaLink verification code is %s. This code will expire in 5 minutes.", otp)
		_, err := v.Mail.SendEmail(channel.Address(), "Verify Your Email", plain, templates.RenderVerificationOtp(otp, "Email"))
		return err
	}
	_, err := v.SMS.SendSMS(channel.Address(), fmt.Sprintf("Your LocaLink verification code is %s. It expires in 5 minutes.", otp))
	return err
}

func applyChannelOtp(record *models.SignupVerification, kind, otp string, expires time.Time) {
	if kind == models.ChannelEmail {
		record.EmailOtp = otp
		record.EmailOtpExpires = &expires
		record.EmailVerified = false
		return
	}
	record.MobileOtp = otp
	record.MobileOtpExpires = &expires
	record.MobileVerified = false
}

type verifySignupOtpRequest struct {
	Otp            string `json:"otp"`
	VerificationID string `json:"verificationId"`
	Type           string `json:"type"`
}

type verifySignupOtpResponse struct {
	Message          string `json:"message"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
	IsMobileVerified bool   `json:"isMobileVerified"`
}

// VerifySignupOtpHandler checks a submitted code for one channel. On success
// the channel's verified flag flips and the code is cleared, so it cannot be
// replayed; the other channel is untouched. The response reports both
// channels so the client can poll until both are satisfied.
func (v Verification) VerifySignupOtpHandler(w http.ResponseWriter, r *http.Request) {
	var body verifySignupOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if body.Type != models.ChannelEmail && body.Type != models.ChannelMobile {
		config.WriteError(w, models.ValidationError{Message: "type must be email or mobile"})
		return
	}

	id, err := primitive.ObjectIDFromHex(body.VerificationID)
	if err != nil {
		config.WriteError(w, models.NotFoundError{Message: "Verification not found"})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	verification, err := v.SVDB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			config.WriteError(w, models.NotFoundError{Message: "Verification not found"})
			return
		}
		config.WriteError(w, err)
		return
	}

	now := time.Now()
	var (
		storedOtp string
		expires   *time.Time
	)
	if body.Type == models.ChannelEmail {
		storedOtp, expires = verification.EmailOtp, verification.EmailOtpExpires
	} else {
		storedOtp, expires = verification.MobileOtp, verification.MobileOtpExpires
	}
	if storedOtp == "" || storedOtp != body.Otp || expires == nil || expires.Before(now) {
		config.WriteError(w, models.ValidationError{Message: "Invalid or expired OTP"})
		return
	}

	var update bson.M
	if body.Type == models.ChannelEmail {
		verification.EmailVerified = true
		update = bson.M{
			"$set":   bson.M{"emailVerified": true, "updatedAt": now},
			"$unset": bson.M{"emailOtp": "", "emailOtpExpires": ""},
		}
	} else {
		verification.MobileVerified = true
		update = bson.M{
			"$set":   bson.M{"mobileVerified": true, "updatedAt": now},
			"$unset": bson.M{"mobileOtp": "", "mobileOtpExpires": ""},
		}
	}
	if err := v.SVDB.UpdateOne(ctx, bson.M{"_id": verification.ID}, update); err != nil {
		config.WriteError(w, err)
		return
	}

	config.WriteJSON(w, http.StatusOK, verifySignupOtpResponse{
		Message:          fmt.Sprintf("%s verified successfully", body.Type),
		IsEmailVerified:  verification.EmailVerified,
		IsMobileVerified: verification.MobileVerified,
	})
}
