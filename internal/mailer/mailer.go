// Package mailer delivers generated emails over AWS SES behind a pluggable
// Sender interface.
package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateAddress reports whether the given string is a plausible email
// address. Syntax check only; no MX lookup.
func ValidateAddress(email string) bool {
	if email == "" {
		return false
	}
	return emailRe.MatchString(strings.TrimSpace(email))
}

// Message is an email ready for delivery.
type Message struct {
	To      string
	From    string
	Subject string
	Body    string // Plain text
}

// Sender is the interface for email delivery providers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ValidationError reports a message rejected before any provider call
// because an address or required field failed validation.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// DeliveryError reports a failure from the delivery provider itself.
type DeliveryError struct {
	Provider string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// validate checks a message before it reaches the provider.
func validate(msg Message) error {
	if !ValidateAddress(msg.To) {
		return &ValidationError{Field: "recipient address", Value: msg.To}
	}
	if !ValidateAddress(msg.From) {
		return &ValidationError{Field: "sender address", Value: msg.From}
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return &ValidationError{Field: "subject", Value: msg.Subject}
	}
	return nil
}
