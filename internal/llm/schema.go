package llm

// JSON Schema type names understood by every provider conversion.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema is the subset of JSON Schema shared by the providers. Each provider
// converts it to its native schema representation; fields a backend cannot
// express are dropped there, never here.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Float returns a pointer to v, for Minimum/Maximum literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for MinItems/MaxItems literals.
func Int(v int) *int { return &v }
