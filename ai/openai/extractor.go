// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AttributeExtractor implements ai.AttributeExtractor using
// OpenAI-compatible chat APIs.
type AttributeExtractor struct {
	client  llms.Model
	timeout timeoutFunc
	logger  *slog.Logger
}

// newAttributeExtractor is an internal constructor that returns the
// concrete type. Used by Provider to manage the instance.
func newAttributeExtractor(config *ai.Config) (*AttributeExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &AttributeExtractor{
		client:  client,
		timeout: timeoutFor(config.RequestTimeout),
		logger:  slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewAttributeExtractor creates a new attribute extractor using the
// provided configuration.
//
// Returns ai.AttributeExtractor interface to enforce abstraction.
func NewAttributeExtractor(config *ai.Config) (ai.AttributeExtractor, error) {
	return newAttributeExtractor(config)
}

// ExtractAttributes asks the model for a pure JSON attribute object and
// parses it defensively. Malformed model output degrades through fence
// stripping, JSON repair, and a permissive key/value token scan; the
// last resort is a map holding the prompt under "query". Only provider
// unreachability surfaces as an error.
func (e *AttributeExtractor) ExtractAttributes(ctx context.Context, prompt string) (core.Attributes, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	ctx, cancel := e.timeout(ctx)
	defer cancel()

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(150))
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return core.Attributes{"query": prompt}, nil
	}

	attributes := parseAttributes(response.Choices[0].Content, e.logger)
	if attributes == nil {
		// Nothing recoverable in the response; fall back to the raw
		// prompt so matching still has something to work with.
		e.logger.Warn("unrecoverable extraction response, using raw prompt", "prompt", prompt)
		return core.Attributes{"query": prompt}, nil
	}
	return attributes, nil
}

// parseAttributes recovers an attribute map from raw model output.
// A nil return means nothing could be recovered; an empty non-nil map
// means the model deliberately answered with an empty object.
func parseAttributes(raw string, logger *slog.Logger) core.Attributes {
	cleaned := cleanResponse(raw)
	if cleaned == "" {
		return nil
	}

	if attributes, ok := parseJSONObject(cleaned); ok {
		return attributes
	}
	logger.Warn("error parsing extraction response as JSON, falling back to token scan", "response", cleaned)

	if attributes := scanPairs(cleaned); len(attributes) > 0 {
		return attributes
	}
	return nil
}

// cleanResponse strips markdown fences and surrounding prose, then
// narrows the text to the outermost JSON object boundary when one is
// present.
func cleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return text
}

// parseJSONObject decodes a JSON object into an attribute map,
// coercing scalar values to strings and dropping nested structures.
func parseJSONObject(text string) (core.Attributes, bool) {
	text = repairJSON(text)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, false
	}

	attributes := make(core.Attributes, len(decoded))
	for key, value := range decoded {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				attributes[key] = v
			}
		case float64:
			attributes[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			attributes[key] = strconv.FormatBool(v)
		}
	}
	return attributes, true
}

// scanPairs is the permissive fallback: it splits the cleaned text on
// newlines and commas and recovers as many "key: value" pairs as it
// can.
func scanPairs(text string) core.Attributes {
	text = strings.Trim(text, "{}")
	attributes := core.Attributes{}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ','
	})
	for _, field := range fields {
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.Trim(strings.TrimSpace(key), `"'`))
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" || value == "" || strings.ContainsAny(key, " {}") {
			continue
		}
		attributes[key] = value
	}
	return attributes
}
