package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/service/ses" //nolint:staticcheck
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane@acme.com", true},
		{"alice.smith+tag@sub.example.co", true},
		{"  jane@acme.com  ", true},
		{"", false},
		{"not-an-email", false},
		{"@acme.com", false},
		{"jane@", false},
		{"jane@acme", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateAddress(tt.email))
		})
	}
}

// fakeSES records calls and returns a scripted error.
type fakeSES struct {
	calls []*ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func testMessage() Message {
	return Message{
		To:      "jane@acme.com",
		From:    "alice@x.com",
		Subject: "Quick question",
		Body:    "Hi Jane. Best, Alice",
	}
}

func TestSend_Success(t *testing.T) {
	fake := &fakeSES{}
	m := &SESMailer{client: fake, from: "noreply@x.com"}

	err := m.Send(context.Background(), testMessage())

	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	input := fake.calls[0]
	assert.Equal(t, "alice@x.com", *input.Source)
	assert.Equal(t, "jane@acme.com", *input.Destination.ToAddresses[0])
	assert.Equal(t, "Quick question", *input.Message.Subject.Data)
	assert.Equal(t, "Hi Jane. Best, Alice", *input.Message.Body.Text.Data)
}

func TestSend_DefaultsFromAddress(t *testing.T) {
	fake := &fakeSES{}
	m := &SESMailer{client: fake, from: "noreply@x.com"}

	msg := testMessage()
	msg.From = ""
	require.NoError(t, m.Send(context.Background(), msg))
	assert.Equal(t, "noreply@x.com", *fake.calls[0].Source)
}

func TestSend_InvalidInputNeverReachesProvider(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
	}{
		{"bad recipient", func(m *Message) { m.To = "nope" }},
		{"bad sender", func(m *Message) { m.From = "also nope" }},
		{"empty subject", func(m *Message) { m.Subject = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSES{}
			m := &SESMailer{client: fake, from: "noreply@x.com"}

			msg := testMessage()
			tt.mutate(&msg)
			err := m.Send(context.Background(), msg)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Empty(t, fake.calls)
		})
	}
}

func TestSend_ProviderFailureIsDeliveryError(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	m := &SESMailer{client: fake, from: "noreply@x.com"}

	err := m.Send(context.Background(), testMessage())

	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "ses", deliveryErr.Provider)
	assert.ErrorContains(t, err, "throttled")
}
