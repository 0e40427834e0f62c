// Package prompt assembles the instruction pair sent to the model for
// cold outreach email generation.
package prompt

import (
	"fmt"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
)

// Params carries the caller-supplied fields the prompt interpolates.
// Validation happens in the generator before this package runs.
type Params struct {
	Company       string
	Role          string
	SenderEmail   string
	ReceiverEmail string
	Position      string // optional; empty means no specific title
	SenderName    string
}

// Builder turns Params into the two-message sequence for a generation call.
type Builder struct{}

// NewBuilder creates a prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// The signature and no-placeholder constraints appear in both the system
// and the user message. Both injection points are load-bearing; do not
// deduplicate.
const systemTemplate = `You are a professional outreach email writer. You write concise, polite job and internship cold emails that are personalized and specific. Keep the body under 140 words, avoid buzzwords, and propose one concrete next step (e.g., a brief call or sharing a portfolio).

Formatting rules, non-negotiable:
1. Your output MUST begin with a line of the exact form "Subject: <one-line subject>", followed by a blank line, then the body paragraphs.
2. Never include bracket-delimited placeholder text such as "[Your Name]", "[Company]", or any other [bracketed] token. Every detail you need is provided; use it verbatim.

The closing signature must be the literal string "Best, " immediately followed by %s - no alteration, translation, or placeholder substitution.`

// BuildMessages returns the ordered [system, user] pair. Pure function of
// its input; safe to call from anywhere.
func (b *Builder) BuildMessages(p Params) []llm.ChatMessage {
	position := p.Position
	if position == "" {
		position = "an opportunity"
	}

	userContent := fmt.Sprintf(
		"Please draft a first-contact cold email from %s (%s) to %s at %s. "+
			"The email targets the %s role/team, regarding %s. "+
			"Remember: the signature must be exactly \"Best, %s\" and the email must not contain any bracketed placeholder text.",
		p.SenderName, p.SenderEmail, p.ReceiverEmail, p.Company,
		p.Role, position,
		p.SenderName,
	)

	return []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(systemTemplate, p.SenderName)},
		{Role: llm.RoleUser, Content: userContent},
	}
}
