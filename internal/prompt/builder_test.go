package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
)

func testParams() Params {
	return Params{
		Company:       "Acme Inc.",
		Role:          "Data Science",
		SenderEmail:   "alice@x.com",
		ReceiverEmail: "jane@acme.com",
		Position:      "Summer 2026 Intern",
		SenderName:    "Alice Smith",
	}
}

func TestBuildMessages_Order(t *testing.T) {
	messages := NewBuilder().BuildMessages(testParams())

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
}

func TestBuildMessages_UserMessageInterpolatesAllFields(t *testing.T) {
	p := testParams()
	messages := NewBuilder().BuildMessages(p)
	user := messages[1].Content

	for _, want := range []string{p.SenderName, p.SenderEmail, p.ReceiverEmail, p.Company, p.Role, p.Position} {
		assert.Contains(t, user, want)
	}
}

func TestBuildMessages_UserMessageHasNoPlaceholderSyntax(t *testing.T) {
	messages := NewBuilder().BuildMessages(testParams())
	user := messages[1].Content

	assert.NotContains(t, user, "[")
	assert.NotContains(t, user, "]")
	assert.NotContains(t, user, "{{")
	assert.NotContains(t, user, "}}")
}

func TestBuildMessages_SystemMessageConstraints(t *testing.T) {
	messages := NewBuilder().BuildMessages(testParams())
	system := messages[0].Content

	assert.Contains(t, system, "Subject:")
	assert.Contains(t, system, "140 words")
	assert.Contains(t, system, `"Best, "`)
	assert.Contains(t, system, "Alice Smith")
}

func TestBuildMessages_SignatureConstraintInBothMessages(t *testing.T) {
	messages := NewBuilder().BuildMessages(testParams())

	// Deliberate redundancy: the signature rule must survive in both turns.
	assert.Contains(t, messages[0].Content, "Best, ")
	assert.Contains(t, messages[1].Content, "Best, Alice Smith")
}

func TestBuildMessages_MissingPositionUsesGenericPhrase(t *testing.T) {
	p := testParams()
	p.Position = ""
	messages := NewBuilder().BuildMessages(p)

	assert.Contains(t, messages[1].Content, "an opportunity")
	assert.NotContains(t, messages[1].Content, "regarding .")
}

func TestBuildMessages_Deterministic(t *testing.T) {
	builder := NewBuilder()
	first := builder.BuildMessages(testParams())
	second := builder.BuildMessages(testParams())

	assert.Equal(t, first, second)
}

func TestBuildMessages_NoUnfilledSlots(t *testing.T) {
	messages := NewBuilder().BuildMessages(testParams())

	for _, msg := range messages {
		assert.False(t, strings.Contains(msg.Content, "%!"), "format verb leaked into prompt: %s", msg.Content)
		assert.False(t, strings.Contains(msg.Content, "%s"), "unexpanded template slot in prompt: %s", msg.Content)
	}
}
