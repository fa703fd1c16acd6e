package parser

import (
	"encoding/json"
	"testing"

	"verdiq/repository"

	"github.com/stretchr/testify/assert"
)

func TestParseIntentResponseStrictJSON(t *testing.T) {
	parsed := ParseIntentResponse(`{"intent":"log_shot","confidence":0.92,"payload":{"club":"7i","distance_y":158}}`)
	assert.Equal(t, repository.IntentLogShot, parsed.Intent)
	assert.Equal(t, 0.92, parsed.Confidence)
	assert.JSONEq(t, `{"club":"7i","distance_y":158}`, string(parsed.Payload))
}

func TestParseIntentResponseNonJSON(t *testing.T) {
	raw := "I think you hit a seven iron to about 150 yards."
	parsed := ParseIntentResponse(raw)
	assert.Equal(t, repository.IntentNote, parsed.Intent)
	assert.Equal(t, 0.3, parsed.Confidence)

	var payload map[string]string
	assert.NoError(t, json.Unmarshal(parsed.Payload, &payload))
	assert.Equal(t, raw, payload["raw"])
}

func TestParseIntentResponseMissingFields(t *testing.T) {
	parsed := ParseIntentResponse(`{}`)
	assert.Equal(t, repository.IntentNote, parsed.Intent)
	assert.Equal(t, 0.5, parsed.Confidence)
	assert.JSONEq(t, `{}`, string(parsed.Payload))
}

func TestParseIntentResponseUnknownIntent(t *testing.T) {
	parsed := ParseIntentResponse(`{"intent":"order_pizza","confidence":0.9}`)
	assert.Equal(t, repository.IntentNote, parsed.Intent)
	assert.Equal(t, 0.9, parsed.Confidence)
}

func TestParseIntentResponseConfidenceClamped(t *testing.T) {
	parsed := ParseIntentResponse(`{"intent":"set_wind","confidence":3.2}`)
	assert.Equal(t, repository.IntentSetWind, parsed.Intent)
	assert.Equal(t, 1.0, parsed.Confidence)

	parsed = ParseIntentResponse(`{"intent":"set_wind","confidence":-0.4}`)
	assert.Equal(t, 0.0, parsed.Confidence)
}

func TestParseIntentResponseNonNumericConfidence(t *testing.T) {
	// the object parses, only the confidence field is malformed
	parsed := ParseIntentResponse(`{"intent":"ask_advice","confidence":"high"}`)
	assert.Equal(t, repository.IntentAskAdvice, parsed.Intent)
	assert.Equal(t, 0.5, parsed.Confidence)
}
