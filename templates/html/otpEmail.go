package templates

import (
	"fmt"
	"html"
)

// RenderVerificationOtp generates the branded HTML for a signup verification
// code. channelLabel is the human name of the channel being verified
// ("Email" or "Phone Number").
func RenderVerificationOtp(code, channelLabel string) string {
	safeLabel := html.EscapeString(channelLabel)
	safeCode := html.EscapeString(code)

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Verify Your %s</h2>
  <p>Thank you for registering with LocaLink. Please use the following verification code to complete your registration:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h1 style="color: #4CAF50; margin: 0; font-size: 32px;">%s</h1>
  </div>
  <p>This code will expire in 5 minutes.</p>
  <p style="color: #666; font-size: 14px;">If you didn't request this verification, please ignore this email.</p>
</div>`, safeLabel, safeCode)
}

// RenderResetOtp generates the HTML for a password reset code.
func RenderResetOtp(code string) string {
	return fmt.Sprintf(`<p>Your OTP for password reset is <b>%s</b>. It expires in 5 minutes.</p>`, html.EscapeString(code))
}
