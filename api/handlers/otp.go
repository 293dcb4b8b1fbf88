package handlers

import (
	"fmt"
	"math/rand"
	"time"
)

// otpTTL is the lifetime of every issued code, signup and reset alike
const otpTTL = 5 * time.Minute

// OTP widths for the two flows
const (
	signupOtpWidth = 6
	resetOtpWidth  = 4
)

// newOTP produces a fixed-width random numeric code and its absolute expiry.
// Codes are short-lived, single-use and channel-bound, so the general
// purpose random source is sufficient here.
func newOTP(width int) (string, time.Time) {
	low := 1
	for i := 1; i < width; i++ {
		low *= 10
	}
	code := fmt.Sprintf("%0*d", width, low+rand.Intn(9*low))
	return code, time.Now().Add(otpTTL)
}
