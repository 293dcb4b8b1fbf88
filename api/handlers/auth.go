package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaurav-singhh/LocaLinkBackend/api"
	"github.com/gaurav-singhh/LocaLinkBackend/config"
	"github.com/gaurav-singhh/LocaLinkBackend/databases"
	"github.com/gaurav-singhh/LocaLinkBackend/models"
	"github.com/gaurav-singhh/LocaLinkBackend/notifications"
	templates "github.com/gaurav-singhh/LocaLinkBackend/templates/html"
)

// bcryptCost matches the salt rounds the rest of the platform uses
const bcryptCost = 10

// Auth handles account lifecycle: finalize signup, signin/signout, the
// password-reset OTP sub-flow and federated Google login
type Auth struct {
	UDB      databases.UserDatabase
	SVDB     databases.SignupVerificationDatabase
	Mail     notifications.Mailer
	Sessions *api.SessionIssuer
	Google   GoogleVerifier // nil disables ID-token verification
}

type signupRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Mobile         string `json:"mobile"`
	Role           string `json:"role"`
	VerificationID string `json:"verificationId"`
}

type verificationStatusResponse struct {
	Message          string `json:"message"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
	IsMobileVerified bool   `json:"isMobileVerified"`
}

// SignupHandler consumes a fully-verified pending record to create the user.
// The submitted details must exactly match the verified record, so contact
// info cannot be swapped after verification. The pending record is deleted on
// success and is never reused.
func (a Auth) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	verification := a.findVerification(ctx, body.VerificationID)
	if verification == nil || !verification.EmailVerified || !verification.MobileVerified {
		// report per-channel state so the client can resume where it left off
		resp := verificationStatusResponse{Message: "Email and mobile verification required"}
		if verification != nil {
			resp.IsEmailVerified = verification.EmailVerified
			resp.IsMobileVerified = verification.MobileVerified
		}
		config.WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	if verification.Email != body.Email || verification.Mobile != body.Mobile || verification.FullName != body.FullName {
		config.WriteError(w, models.ValidationError{Message: "Provided details do not match verified records"})
		return
	}

	if len(body.Password) < 6 {
		config.WriteError(w, models.ValidationError{Message: "Password must be at least 6 characters."})
		return
	}

	// friendly early answer; the unique indexes are the real arbiter below
	_, err := a.UDB.FindOne(ctx, bson.M{"$or": []bson.M{{"email": body.Email}, {"mobile": body.Mobile}}})
	if err == nil {
		config.WriteError(w, models.ConflictError{Message: "User Already exist."})
		return
	}
	if err != mongo.ErrNoDocuments {
		config.WriteError(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		config.WriteError(w, err)
		return
	}

	now := time.Now()
	user, err := a.UDB.InsertOne(ctx, models.User{
		FullName:         body.FullName,
		Email:            body.Email,
		Password:         string(hashed),
		Mobile:           body.Mobile,
		Role:             body.Role,
		IsEmailVerified:  true,
		IsMobileVerified: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.WriteError(w, models.ConflictError{Message: "User Already exist."})
			return
		}
		config.WriteError(w, err)
		return
	}

	if err := a.SVDB.DeleteOne(ctx, bson.M{"_id": verification.ID}); err != nil {
		config.WriteError(w, err)
		return
	}

	if err := a.issueSession(w, user); err != nil {
		config.WriteError(w, err)
		return
	}
	config.WriteJSON(w, http.StatusCreated, user)
}

func (a Auth) findVerification(ctx context.Context, hexID string) *models.SignupVerification {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil
	}
	verification, err := a.SVDB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil
	}
	return verification
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninHandler checks the password against the stored hash and issues a
// session cookie. Federated accounts store no hash, so the comparison always
// fails for them.
func (a Auth) SigninHandler(w http.ResponseWriter, r *http.Request) {
	var body signinRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			config.WriteError(w, models.NotFoundError{Message: "User does not exist."})
			return
		}
		config.WriteError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		config.WriteError(w, models.AuthError{Message: "incorrect Password"})
		return
	}

	if err := a.issueSession(w, user); err != nil {
		config.WriteError(w, err)
		return
	}
	config.WriteJSON(w, http.StatusOK, user)
}

// SignoutHandler clears the session cookie. Always succeeds, regardless of
// prior session state.
func (a Auth) SignoutHandler(w http.ResponseWriter, r *http.Request) {
	a.Sessions.ClearCookie(w)
	config.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "log out successfully"})
}

type sendOtpRequest struct {
	Email string `json:"email"`
}

// SendOtpHandler starts the password-reset sub-flow: a 4-digit code stored on
// the user record itself, independent of signup verification state.
func (a Auth) SendOtpHandler(w http.ResponseWriter, r *http.Request) {
	var body sendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			config.WriteError(w, models.NotFoundError{Message: "User does not exist."})
			return
		}
		config.WriteError(w, err)
		return
	}

	otp, expires := newOTP(resetOtpWidth)
	plain := fmt.Sprintf("Your OTP for password reset is %s. It expires in 5 minutes.", otp)
	if _, err := a.Mail.SendEmail(user.Email, "Reset Your Password", plain, templates.RenderResetOtp(otp)); err != nil {
		config.WriteError(w, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"resetOtp":      otp,
		"otpExpires":    expires,
		"isOtpVerified": false,
		"updatedAt":     time.Now(),
	}}
	if _, err := a.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		config.WriteError(w, err)
		return
	}

	config.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "otp sent successfully"})
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// VerifyOtpHandler checks the reset code: exact match and unexpired. Success
// clears the code, so it is single use.
func (a Auth) VerifyOtpHandler(w http.ResponseWriter, r *http.Request) {
	var body verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
	if err != nil && err != mongo.ErrNoDocuments {
		config.WriteError(w, err)
		return
	}
	if user == nil || user.ResetOtp == "" || user.ResetOtp != body.Otp ||
		user.OtpExpires == nil || user.OtpExpires.Before(time.Now()) {
		config.WriteError(w, models.ValidationError{Message: "invalid/expired otp"})
		return
	}

	update := bson.M{
		"$set":   bson.M{"isOtpVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"resetOtp": "", "otpExpires": ""},
	}
	if _, err := a.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		config.WriteError(w, err)
		return
	}

	config.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "otp verify successfully"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPasswordHandler applies the new password once the reset OTP has been
// verified, then resets the flag so the verification cannot be reused.
func (a Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var body resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
	if err != nil && err != mongo.ErrNoDocuments {
		config.WriteError(w, err)
		return
	}
	if user == nil || !user.IsOtpVerified {
		config.WriteError(w, models.ValidationError{Message: "otp verification required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcryptCost)
	if err != nil {
		config.WriteError(w, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"password":      string(hashed),
		"isOtpVerified": false,
		"updatedAt":     time.Now(),
	}}
	if _, err := a.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		config.WriteError(w, err)
		return
	}

	config.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "password reset successfully"})
}

type googleAuthRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
	IDToken  string `json:"idToken"`
}

// GoogleAuthHandler signs a federated user in, creating the account on first
// login. Federated accounts are stored without a password. With a verifier
// configured, the email and name come from the verified ID token rather than
// the request body.
func (a Auth) GoogleAuthHandler(w http.ResponseWriter, r *http.Request) {
	var body googleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if a.Google != nil {
		claims, err := a.Google.Verify(ctx, body.IDToken)
		if err != nil {
			config.WriteError(w, err)
			return
		}
		body.Email = claims.Email
		if claims.FullName != "" {
			body.FullName = claims.FullName
		}
	}
	if body.Email == "" {
		config.WriteError(w, models.ValidationError{Message: "Email is required"})
		return
	}

	user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		if err != mongo.ErrNoDocuments {
			config.WriteError(w, err)
			return
		}
		now := time.Now()
		user, err = a.UDB.InsertOne(ctx, models.User{
			FullName:        body.FullName,
			Email:           body.Email,
			Mobile:          body.Mobile,
			Role:            body.Role,
			IsEmailVerified: true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			// two first logins for the same email can race past the find
			if mongo.IsDuplicateKeyError(err) {
				config.WriteError(w, models.ConflictError{Message: "User Already exist."})
				return
			}
			config.WriteError(w, err)
			return
		}
	}

	if err := a.issueSession(w, user); err != nil {
		config.WriteError(w, err)
		return
	}
	config.WriteJSON(w, http.StatusOK, user)
}

func (a Auth) issueSession(w http.ResponseWriter, user *models.User) error {
	token, err := a.Sessions.Issue(user.ID.Hex())
	if err != nil {
		return err
	}
	a.Sessions.SetCookie(w, token)
	return nil
}
