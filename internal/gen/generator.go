package gen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sceneforge/internal/assets"
	"sceneforge/internal/llm"
	"sceneforge/internal/scene"
)

var (
	// ErrEmptyPrompt rejects blank prompts before anything else runs.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNoCredential means no provider in the chain is configured;
	// generation is never attempted.
	ErrNoCredential = errors.New("no generation backend configured")
)

// GenerationError wraps a backend or parse failure. The message shown to
// users stays generic; the cause is preserved for logs and errors.Is/As.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("scene generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator turns prompts into SceneDescriptions through an LLM client.
// It holds no mutable state; every call is independent, with no retries and
// no caching.
type Generator struct {
	client llm.Client
	model  string
}

// New returns a Generator using the given client. model overrides the
// provider default when non-empty.
func New(client llm.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Configured reports whether at least one backend is ready to take requests.
func (g *Generator) Configured() bool {
	return g.client != nil && g.client.Configured()
}

// Generate produces a SceneDescription for prompt.
//
// Guards run first: a blank prompt is ErrEmptyPrompt, an unconfigured client
// is ErrNoCredential. A prompt that case-insensitively equals a model library
// key resolves locally without touching the backend. Everything else goes to
// the backend with the fixed instruction payload and strict schema; the reply
// must parse as one conforming JSON object or the whole generation fails with
// a GenerationError. A reply naming a known model resolves to its URL with no
// shapes; otherwise the shape list is used as-is (empty when absent).
func (g *Generator) Generate(ctx context.Context, prompt string) (scene.SceneDescription, error) {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return scene.SceneDescription{}, ErrEmptyPrompt
	}
	if g.client == nil || !g.client.Configured() {
		return scene.SceneDescription{}, ErrNoCredential
	}
	if url, ok := assets.LookupModel(p); ok {
		return scene.SceneDescription{Shapes: []scene.ShapeInstruction{}, ModelReference: url}, nil
	}

	reply, err := g.client.Complete(ctx, llm.Request{
		Model:  g.model,
		System: buildSystemPrompt(),
		Prompt: p,
		Schema: responseSchema(),
	})
	if err != nil {
		return scene.SceneDescription{}, &GenerationError{Err: err}
	}
	body, err := extractJSON(reply)
	if err != nil {
		return scene.SceneDescription{}, &GenerationError{Err: err}
	}
	resp, err := scene.ParseResponse([]byte(body))
	if err != nil {
		return scene.SceneDescription{}, &GenerationError{Err: err}
	}
	if resp.Model != "" {
		if url, ok := assets.LookupModel(resp.Model); ok {
			return scene.SceneDescription{Shapes: []scene.ShapeInstruction{}, ModelReference: url}, nil
		}
	}
	shapes := resp.Shapes
	if shapes == nil {
		shapes = []scene.ShapeInstruction{}
	}
	return scene.SceneDescription{Shapes: shapes}, nil
}

var fenceRe = regexp.MustCompile("^```\\w*\\n?")

// extractJSON locates the one JSON object in the reply. Backends in JSON mode
// return it bare, but a markdown fence or stray prose around it is tolerated;
// the object itself still has to parse in full downstream.
func extractJSON(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = fenceRe.ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	start := strings.Index(reply, "{")
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}
	reply = reply[start:]
	depth := 0
	inString := false
	escaped := false
	for i, c := range reply {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return reply[:i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON braces")
}
