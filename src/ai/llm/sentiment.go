package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const sentimentPrompt = `Analyze the sentiment of this text and provide a detailed breakdown:

Text: %q

Provide:
1. Overall sentiment (positive/negative/neutral)
2. Sentiment score (-1 to 1)
3. Key emotional indicators
4. Tone analysis
5. Audience reception prediction

Respond with a single JSON object using the keys sentiment, score, confidence, emotions, tone.`

// AnalyzeSentiment asks the model for a structured sentiment breakdown. Replies that
// are not JSON yield a neutral reading carrying the raw text.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) map[string]any {
	if err := ctx.Err(); err != nil {
		return neutralSentiment(map[string]any{"error": err.Error()})
	}
	reply := s.Complete(ctx, Request{
		Prompt:    fmt.Sprintf(sentimentPrompt, text),
		MaxTokens: 500,
	})

	parsed, ok := extractJSONObject(reply)
	if !ok {
		return neutralSentiment(map[string]any{"raw_response": reply})
	}
	if _, has := parsed["sentiment"]; !has {
		parsed["sentiment"] = "neutral"
	}
	parsed["raw_response"] = reply
	return parsed
}

func neutralSentiment(extra map[string]any) map[string]any {
	out := map[string]any{
		"sentiment":  "neutral",
		"score":      0.0,
		"confidence": 0.5,
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// extractJSONObject decodes the outermost {...} span of s.
func extractJSONObject(s string) (map[string]any, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return nil, false
	}
	return out, true
}
