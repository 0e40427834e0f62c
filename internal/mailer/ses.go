package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"         //nolint:staticcheck // v2 migration pending
	"github.com/aws/aws-sdk-go/aws/session" //nolint:staticcheck
	"github.com/aws/aws-sdk-go/service/ses" //nolint:staticcheck

	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
)

const charsetUTF8 = "UTF-8"

// sesAPI is the subset of the SES client we call; narrowed for testing.
type sesAPI interface {
	SendEmail(input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SESMailer sends plain-text emails through AWS SES.
type SESMailer struct {
	client sesAPI
	from   string
}

// NewSESMailer creates an SES-backed sender. The default From address comes
// from configuration and can be overridden per message.
func NewSESMailer(cfg *config.Config) *SESMailer {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
	}))

	return &SESMailer{
		client: ses.New(sess),
		from:   cfg.EmailFrom,
	}
}

// Send validates the message and delivers it via SES. Returns
// *ValidationError for rejected input and *DeliveryError for provider
// failures; the two are distinguishable with errors.As.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = m.from
	}
	if err := validate(msg); err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source: aws.String(msg.From),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(msg.To)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String(charsetUTF8),
			},
			Body: &ses.Body{
				Text: &ses.Content{
					Data:    aws.String(msg.Body),
					Charset: aws.String(charsetUTF8),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(input); err != nil {
		return &DeliveryError{Provider: "ses", Err: err}
	}
	return nil
}
