package service

import (
	"context"
	"encoding/json"
	"fmt"
	"skillswap_backend/internal/util"
	"strings"

	"github.com/qri-io/jsonschema"
)

const quizSchemaJSON = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "options", "correct_answer"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "options": {
        "type": "array",
        "minItems": 2,
        "items": {"type": "string"}
      },
      "correct_answer": {"type": "string", "minLength": 1}
    }
  }
}`

const matchSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["user_id"],
    "properties": {
      "user_id": {"type": "integer"},
      "match_type": {"type": "string"},
      "justification": {"type": "string"}
    }
  }
}`

var (
	quizSchema  = mustSchema(quizSchemaJSON)
	matchSchema = mustSchema(matchSchemaJSON)
)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return rs
}

// stripCodeFences removes markdown code fences models like to wrap JSON in.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeAIJSON strips fences from raw, checks it against schema and decodes it
// into out. Anything that does not fit is ErrMalformedAIResponse.
func decodeAIJSON(ctx context.Context, schema *jsonschema.Schema, raw string, out interface{}) error {
	body := []byte(stripCodeFences(raw))

	verrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrMalformedAIResponse, err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("%w: %s", util.ErrMalformedAIResponse, sb.String())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", util.ErrMalformedAIResponse, err)
	}
	return nil
}
