package notifications

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/config"
	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

// Mailer dispatches transactional email. Implementations return the provider
// delivery id on success.
type Mailer interface {
	SendEmail(to, subject, plainText, htmlContent string) (string, error)
}

type sendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridMailer builds the process-wide SendGrid client from config. It
// is constructed once at startup and injected into the handlers.
func NewSendgridMailer(conf *config.Config) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(conf.SendgridAPIKey),
		from:   mail.NewEmail(conf.EmailFromName, conf.EmailFrom),
	}
}

func (m *sendgridMailer) SendEmail(to, subject, plainText, htmlContent string) (string, error) {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), plainText, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		return "", models.DeliveryError{Message: "failed to send email", Cause: err}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", models.DeliveryError{
			Message: fmt.Sprintf("email provider returned status %d", response.StatusCode),
		}
	}

	messageID := response.Headers["X-Message-Id"]
	deliveryID := ""
	if len(messageID) > 0 {
		deliveryID = messageID[0]
	}
	zap.S().Infow("email sent", "to", to, "subject", subject, "deliveryId", deliveryID)
	return deliveryID, nil
}
