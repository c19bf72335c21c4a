// Package registry reshapes MCP tool descriptors into the
// function-calling format the chat endpoint expects.
package registry

import (
	"encoding/json"

	"github.com/lydakis/mcpchat/internal/session"
)

// FunctionDef is one entry of the "tools" array sent to the model.
type FunctionDef struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function carries the tool's name, description and JSON schema.
type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// FunctionDefs converts tool descriptors to function-calling form.
// Order and count are preserved; a missing description becomes the
// empty string, never null.
func FunctionDefs(tools []session.ToolInfo) []FunctionDef {
	defs := make([]FunctionDef, len(tools))
	for i, t := range tools {
		defs[i] = FunctionDef{
			Type: "function",
			Function: Function{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		}
	}
	return defs
}
