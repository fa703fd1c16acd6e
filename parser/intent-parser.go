package parser

import (
	"encoding/json"

	"verdiq/repository"
)

// ParsedIntent is the normalized result of the intent model's reply.
type ParsedIntent struct {
	Intent     repository.IntentKind
	Confidence float64
	Payload    json.RawMessage
}

type rawIntent struct {
	Intent     json.RawMessage `json:"intent"`
	Confidence json.RawMessage `json:"confidence"`
	Payload    json.RawMessage `json:"payload"`
}

// ParseIntentResponse normalizes whatever the chat model returned into a
// ParsedIntent. The model is prompted for strict JSON but not trusted:
//   - output that does not parse as a JSON object becomes intent "note" with
//     confidence 0.3 and the raw text preserved in the payload
//   - a missing, non-string or unknown intent tag falls back to "note"
//   - a missing or non-numeric confidence defaults to 0.5, and any value is
//     clamped into [0, 1]
//   - a missing payload becomes an empty object
func ParseIntentResponse(raw string) ParsedIntent {
	var parsed rawIntent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		payload, _ := json.Marshal(map[string]string{"raw": raw})
		return ParsedIntent{
			Intent:     repository.IntentNote,
			Confidence: 0.3,
			Payload:    payload,
		}
	}

	intent := repository.IntentNote
	var tag string
	if parsed.Intent != nil && json.Unmarshal(parsed.Intent, &tag) == nil {
		if repository.IntentKind(tag).Valid() {
			intent = repository.IntentKind(tag)
		}
	}

	confidence := 0.5
	var number float64
	if parsed.Confidence != nil && json.Unmarshal(parsed.Confidence, &number) == nil {
		confidence = clamp01(number)
	}

	payload := json.RawMessage("{}")
	if parsed.Payload != nil && string(parsed.Payload) != "null" {
		payload = parsed.Payload
	}

	return ParsedIntent{
		Intent:     intent,
		Confidence: confidence,
		Payload:    payload,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
