package observability

import (
	"strconv"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// mistral-large pricing
	mistralLargeInputPrice  = 0.002
	mistralLargeOutputPrice = 0.006

	// mistral-medium pricing
	mistralMediumInputPrice  = 0.0004
	mistralMediumOutputPrice = 0.002

	// mistral-small pricing
	mistralSmallInputPrice  = 0.0001
	mistralSmallOutputPrice = 0.0003
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for the supported Mistral models
var PricingTable = map[string]ModelPricing{
	"mistral-large-latest": {
		InputPricePer1K:  mistralLargeInputPrice,
		OutputPricePer1K: mistralLargeOutputPrice,
	},
	"mistral-medium-latest": {
		InputPricePer1K:  mistralMediumInputPrice,
		OutputPricePer1K: mistralMediumOutputPrice,
	},
	"mistral-small-latest": {
		InputPricePer1K:  mistralSmallInputPrice,
		OutputPricePer1K: mistralSmallOutputPrice,
	},
}

// CalculateMistralCost estimates the cost in USD for a chat completion call
func CalculateMistralCost(model string, usage llm.Usage) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		// Unknown model: assume the large tier so costs are never understated
		pricing = PricingTable["mistral-large-latest"]
	}

	inputCost := (float64(usage.PromptTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.CompletionTokens) / tokensPerKilo) * pricing.OutputPricePer1K
	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
