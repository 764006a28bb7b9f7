package summarize

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const systemPrompt = `You analyze a short personal reflection from a habit
tracking journal. Respond with JSON only: a one or two sentence
encouraging summary in the requested voice, a sentiment polarity in
[-1,1], a subjectivity in [0,1], an emotion label of Motivated, Neutral
or Stressed consistent with the polarity, and up to five lowercase
keywords taken from the reflection.`

// analysisSchema is the JSON Schema every LLM backend must satisfy.
var analysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"summary": map[string]any{"type": "string"},
		"emotion": map[string]any{
			"type": "string",
			"enum": []any{EmotionMotivated, EmotionNeutral, EmotionStressed},
		},
		"polarity":     map[string]any{"type": "number", "minimum": -1, "maximum": 1},
		"subjectivity": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"keywords": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"maxItems": 5,
		},
	},
	"required":             []any{"summary", "emotion", "polarity", "subjectivity", "keywords"},
	"additionalProperties": false,
}

func userPrompt(req Request) string {
	msg := fmt.Sprintf("Voice: %s.\nReflection: %s", req.Style, req.Reflection)
	if req.Name != "" {
		msg = fmt.Sprintf("Name: %s.\n%s", req.Name, msg)
	}
	return msg
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// parseAnalysis validates raw JSON against the analysis schema and
// decodes it. Returns *ErrInvalidResponse on any mismatch.
func parseAnalysis(raw []byte) (*Analysis, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compileOnce.Do(func() {
		// The compiler wants a json-decoded value, not a Go literal map.
		defBytes, err := json.Marshal(analysisSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://reflection-analysis.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	if compileErr != nil {
		return nil, fmt.Errorf("compile analysis schema: %w", compileErr)
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var a Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	return &a, nil
}
