package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
)

func TestOpenAISendsJSONSchemaFormat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": `{"shapes":[]}`},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIWithBaseURL("test-key", srv.URL+"/v1")
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"model": {Type: TypeString},
		},
	}
	reply, err := c.Complete(context.Background(), Request{System: "emit JSON", Prompt: "a duck", Schema: schema})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != `{"shapes":[]}` {
		t.Errorf("reply = %q", reply)
	}
	rf, ok := body["response_format"].(map[string]any)
	if !ok {
		t.Fatalf("response_format missing: %v", body)
	}
	if rf["type"] != "json_schema" {
		t.Errorf("response_format type = %v", rf["type"])
	}
	js, ok := rf["json_schema"].(map[string]any)
	if !ok || js["name"] != "scene_description" {
		t.Errorf("json_schema = %v", rf["json_schema"])
	}
}

func TestOpenAIUnconfigured(t *testing.T) {
	c := NewOpenAI("")
	if c.Configured() {
		t.Error("empty key should not be configured")
	}
	if _, err := c.Complete(context.Background(), Request{Prompt: "hi"}); err == nil {
		t.Fatal("want error without API key")
	}
}

func TestToOpenAISchema(t *testing.T) {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"kind":      {Type: TypeString, Enum: []string{"box", "sphere"}},
			"metalness": {Type: TypeNumber, Minimum: Float(0), Maximum: Float(1)},
			"position":  {Type: TypeArray, Items: &Schema{Type: TypeNumber}},
		},
		Required: []string{"kind"},
	}
	def := toOpenAISchema(s)
	if def.Type != jsonschema.Object {
		t.Errorf("type = %v", def.Type)
	}
	kind := def.Properties["kind"]
	if len(kind.Enum) != 2 || kind.Enum[0] != "box" {
		t.Errorf("enum not preserved: %v", kind.Enum)
	}
	pos := def.Properties["position"]
	if pos.Type != jsonschema.Array || pos.Items == nil || pos.Items.Type != jsonschema.Number {
		t.Errorf("array items not converted: %+v", pos)
	}
	if len(def.Required) != 1 || def.Required[0] != "kind" {
		t.Errorf("required not preserved: %v", def.Required)
	}
}
