package notifications

import (
	"regexp"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/config"
	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

// SMSSender dispatches a text message to a mobile number. Implementations
// return the provider delivery id on success.
type SMSSender interface {
	SendSMS(to, body string) (string, error)
}

var (
	e164Pattern   = regexp.MustCompile(`^\+\d{8,15}$`)
	nonDigits     = regexp.MustCompile(`\D`)
	tenDigitLocal = regexp.MustCompile(`^\d{10}$`)
)

type twilioSender struct {
	client      *twilio.RestClient
	from        string // phone number or MG... messaging service SID
	countryCode string
}

// NewTwilioSender builds the process-wide Twilio client from config. From
// may be a sender phone number or a messaging service SID (MG prefix).
func NewTwilioSender(conf *config.Config) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: conf.TwilioAccountSID,
		Password: conf.TwilioAuthToken,
	})
	return &twilioSender{
		client:      client,
		from:        conf.TwilioFrom,
		countryCode: conf.SMSDefaultCountryCode,
	}
}

func (t *twilioSender) SendSMS(to, body string) (string, error) {
	toE164, err := normalizeToE164(to, t.countryCode)
	if err != nil {
		return "", err
	}
	if t.from == "" {
		return "", models.DeliveryError{Message: "SMS sender not configured, set TWILIO_FROM"}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toE164)
	params.SetBody(body)
	if strings.HasPrefix(t.from, "MG") {
		params.SetMessagingServiceSid(t.from)
	} else {
		params.SetFrom(t.from)
	}

	res, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", models.DeliveryError{Message: "failed to send SMS", Cause: err}
	}

	deliveryID := ""
	if res.Sid != nil {
		deliveryID = *res.Sid
	}
	zap.S().Infow("sms sent", "to", toE164, "deliveryId", deliveryID)
	return deliveryID, nil
}

// normalizeToE164 accepts either an E.164 number or a 10-digit local number,
// which gets the default country code prefixed.
func normalizeToE164(input, countryCode string) (string, error) {
	raw := strings.Join(strings.Fields(input), "")
	if e164Pattern.MatchString(raw) {
		return raw, nil
	}

	digitsOnly := nonDigits.ReplaceAllString(raw, "")
	if tenDigitLocal.MatchString(digitsOnly) {
		return countryCode + digitsOnly, nil
	}
	return "", models.ValidationError{
		Message: "Invalid phone number format. Provide E.164 (+15551234567) or 10-digit local number",
	}
}
