package llm

// ChatMessage is a single message in a chat completion conversation.
// The sequence is immutable once built: exactly one system message
// followed by one user message per generation.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// Role constants
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// chatPayload is the request body for the chat completion endpoint.
// Built fresh per call, never reused.
type chatPayload struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Usage reports token consumption for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatResponse mirrors the chat completion success body. Only the fields
// we navigate are declared; everything else is ignored.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Completion is the result of a successful chat completion call.
type Completion struct {
	Content string
	Usage   Usage
}
