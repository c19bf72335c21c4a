package gateway

import (
	"encoding/json"
	"fmt"
)

// ReplyKind discriminates the two possible answers from the model.
type ReplyKind int

const (
	// ReplyText is a plain text answer (possibly empty).
	ReplyText ReplyKind = iota

	// ReplyToolCalls is a batch of requested tool invocations.
	ReplyToolCalls
)

// Reply is the model's answer to one query: either text or a batch of
// tool calls, never both.
type Reply struct {
	Kind  ReplyKind
	Text  string
	Calls []ToolCall
}

// ToolCall is one model-issued tool invocation request. The wire shape
// varies by model: name and arguments may sit under "function" or at
// the top level, and arguments may be a JSON object or a JSON-encoded
// string.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Function  FunctionCall    `json:"function"`
}

// FunctionCall is the nested form used by OpenAI-style responses.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ArgumentError reports tool call arguments that could not be decoded
// into a structured mapping.
type ArgumentError struct {
	Tool string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("decoding arguments for %q: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// ToolName resolves the tool name from either wire shape.
func (tc ToolCall) ToolName() string {
	if tc.Function.Name != "" {
		return tc.Function.Name
	}
	return tc.Name
}

// ArgumentsMap normalizes the call's arguments to a structured
// mapping, decoding the string-encoded form when necessary. Absent
// arguments yield an empty map.
func (tc ToolCall) ArgumentsMap() (map[string]any, error) {
	raw := tc.Function.Arguments
	if len(raw) == 0 {
		raw = tc.Arguments
	}
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]any{}, nil
	}

	// String form: the arguments object arrives JSON-encoded inside a
	// JSON string.
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, &ArgumentError{Tool: tc.ToolName(), Err: err}
		}
		if encoded == "" {
			return map[string]any{}, nil
		}
		raw = json.RawMessage(encoded)
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, &ArgumentError{Tool: tc.ToolName(), Err: err}
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
