package llm

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Gemini implements Client using the Gemini API with JSON-mode output.
// The response schema is enforced server-side via ResponseSchema, so replies
// are bare JSON (no markdown fences) when the backend behaves.
type Gemini struct {
	apiKey  string
	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGemini returns a Client that uses the Gemini API with the given API key.
// The underlying client is created on first use.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey}
}

// Configured reports whether an API key is set.
func (g *Gemini) Configured() bool {
	return g.apiKey != ""
}

// Complete sends the request to Gemini and returns the reply text.
func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("gemini: API key not set")
	}
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if g.initErr != nil {
		return "", fmt.Errorf("gemini: %w", g.initErr)
	}

	model := req.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseSchema = toGeminiSchema(req.Schema)
	}

	res, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

// toGeminiSchema converts the neutral schema to the genai form. Gemini keeps
// enums, bounds, and item limits; unknown type names map to STRING.
func toGeminiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        geminiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		Items:       toGeminiSchema(s.Items),
		Required:    s.Required,
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		out.MinItems = &v
	}
	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		out.MaxItems = &v
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGeminiSchema(prop)
		}
	}
	return out
}

func geminiType(t string) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
