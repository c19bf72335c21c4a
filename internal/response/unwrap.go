// Package response extracts printable output from MCP tool results.
package response

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Text returns the first text-bearing content element of a tool
// result. The second return is false when the result carries no text.
func Text(result *mcp.CallToolResult) (string, bool) {
	if result == nil {
		return "", false
	}
	for _, content := range result.Content {
		if text, ok := renderContent(content); ok {
			return text, true
		}
	}
	return "", false
}

// Render returns the result's text, falling back to a compact JSON
// rendering of the whole result when no text field exists.
func Render(result *mcp.CallToolResult) string {
	if text, ok := Text(result); ok {
		return text
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return ""
	}
	return string(raw)
}

func renderContent(content mcp.Content) (string, bool) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, true
	case *mcp.TextContent:
		return c.Text, true
	default:
		// Unknown concrete type: probe the serialized form for a
		// text field.
		var typed struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		raw, err := json.Marshal(content)
		if err != nil || json.Unmarshal(raw, &typed) != nil {
			return "", false
		}
		if typed.Type == "text" {
			return typed.Text, true
		}
		return "", false
	}
}
