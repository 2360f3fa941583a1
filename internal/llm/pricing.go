package llm

// ModelCost holds per-million-token pricing in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost computes the USD cost of a request with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1e6*c.InputPerMTok +
		float64(outputTokens)/1e6*c.OutputPerMTok
}

// modelCosts maps model IDs to pricing. Used by `lernkraft llm stats`
// for cost estimates; unknown models show as "?".
var modelCosts = map[string]ModelCost{
	"gemini-2.5-flash":           {InputPerMTok: 0.30, OutputPerMTok: 2.50},
	"gemini-2.5-pro":             {InputPerMTok: 1.25, OutputPerMTok: 10.00},
	"gpt-4o":                     {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4o-mini":                {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"claude-sonnet-4-20250514":   {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-haiku-4-5-20251001":  {InputPerMTok: 1.00, OutputPerMTok: 5.00},
}

// LookupCost returns pricing for a model ID, or nil if unknown.
func LookupCost(model string) *ModelCost {
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}
