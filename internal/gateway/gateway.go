// Package gateway is the HTTP client boundary to the Ollama chat
// endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lydakis/mcpchat/internal/config"
	"github.com/lydakis/mcpchat/internal/registry"
)

// Client issues single-shot chat completion requests. One request per
// query: no retries, no streaming.
type Client struct {
	BaseURL      string
	Model        string
	SystemPrompt string
	Headers      map[string]string

	httpClient *http.Client
}

// New builds a Client from configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(cfg.OllamaURL, "/"),
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
		Headers:      cfg.Headers,
		// Zero timeout is deliberate: a stalled model server blocks
		// the session instead of failing with a deadline error.
		httpClient: &http.Client{},
	}
}

// StatusError reports a non-200 answer from the chat endpoint.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint returned %d: %s", e.Status, e.Body)
}

// Message is one entry of the conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model      string                 `json:"model"`
	Messages   []Message              `json:"messages"`
	Tools      []registry.FunctionDef `json:"tools"`
	ToolChoice string                 `json:"tool_choice"`
	Stream     bool                   `json:"stream"`
}

// Chat sends one query to the model with the given tools advertised.
// The conversation is always two messages: the fixed system prompt and
// the current query. History is not carried across calls.
func (c *Client) Chat(ctx context.Context, query string, tools []registry.FunctionDef) (Reply, error) {
	if tools == nil {
		tools = []registry.FunctionDef{}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []Message{
			{Role: "system", Content: c.SystemPrompt},
			{Role: "user", Content: query},
		},
		Tools:      tools,
		ToolChoice: "auto",
		Stream:     false,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for name, value := range c.Headers {
		if strings.TrimSpace(name) == "" {
			continue
		}
		httpReq.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Reply{}, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return parseReply(respBody)
}

func parseReply(raw []byte) (Reply, error) {
	var wire struct {
		Message struct {
			Content   string          `json:"content"`
			ToolCalls json.RawMessage `json:"tool_calls"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Reply{}, fmt.Errorf("decode response: %w", err)
	}

	// A present tool_calls field wins even when content is also set.
	if len(wire.Message.ToolCalls) > 0 && string(wire.Message.ToolCalls) != "null" {
		var calls []ToolCall
		if err := json.Unmarshal(wire.Message.ToolCalls, &calls); err != nil {
			return Reply{}, fmt.Errorf("decode tool calls: %w", err)
		}
		return Reply{Kind: ReplyToolCalls, Calls: calls}, nil
	}

	return Reply{Kind: ReplyText, Text: wire.Message.Content}, nil
}
