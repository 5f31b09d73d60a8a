package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAI implements Client using the OpenAI Chat Completions API. When a
// schema is present it is sent as a json_schema response format; strict mode
// stays off because the scene schema has optional fields.
type OpenAI struct {
	apiKey string
	client *openai.Client
}

// NewOpenAI returns a Client that uses the OpenAI API with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	c := &OpenAI{apiKey: apiKey}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// NewOpenAIWithBaseURL targets an OpenAI-compatible server at baseURL
// (e.g. a proxy, or a test server).
func NewOpenAIWithBaseURL(apiKey, baseURL string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &OpenAI{apiKey: apiKey, client: openai.NewClientWithConfig(config)}
}

// Configured reports whether an API key is set.
func (c *OpenAI) Configured() bool {
	return c.apiKey != ""
}

// Complete sends system and user messages to the OpenAI API and returns the
// assistant reply.
func (c *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("openai: API key not set")
	}
	model := req.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Schema != nil {
		schema := toOpenAISchema(req.Schema)
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "scene_description",
				Schema: &schema,
				Strict: false,
			},
		}
	}
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// toOpenAISchema converts the neutral schema to the go-openai jsonschema
// form. That form has no numeric bounds, so Minimum/Maximum are dropped;
// the render-side clamp covers out-of-range values anyway.
func toOpenAISchema(s *Schema) jsonschema.Definition {
	out := jsonschema.Definition{
		Type:        openaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if s.Items != nil {
		items := toOpenAISchema(s.Items)
		out.Items = &items
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toOpenAISchema(prop)
		}
	}
	return out
}

func openaiType(t string) jsonschema.DataType {
	switch t {
	case TypeObject:
		return jsonschema.Object
	case TypeArray:
		return jsonschema.Array
	case TypeNumber:
		return jsonschema.Number
	case TypeInteger:
		return jsonschema.Integer
	case TypeBoolean:
		return jsonschema.Boolean
	default:
		return jsonschema.String
	}
}
