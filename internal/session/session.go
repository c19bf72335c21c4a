// Package session owns the tool server subprocess and the MCP
// connection to it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/lydakis/mcpchat/internal/config"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidServerScript is returned by Connect before anything is
// spawned when the script path does not name a Python source file.
var ErrInvalidServerScript = errors.New("server script must be a .py file")

// ToolInfo is a simplified tool descriptor returned by ListTools.
type ToolInfo struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Session is the live connection to the tool server. There is exactly
// one per process; Close releases the subprocess exactly once.
type Session struct {
	client *mcpclient.Client

	closeOnce sync.Once
	closeErr  error
}

type lookupPathFunc func(file string) (string, error)

// Connect launches the tool server subprocess running scriptPath and
// performs the MCP initialize handshake. The script path must end in
// .py; anything else fails with ErrInvalidServerScript before a
// process is started.
func Connect(ctx context.Context, scfg config.ServerConfig, scriptPath string) (*Session, error) {
	return connectWithLookup(ctx, scfg, scriptPath, exec.LookPath)
}

func connectWithLookup(ctx context.Context, scfg config.ServerConfig, scriptPath string, lookup lookupPathFunc) (*Session, error) {
	if !strings.HasSuffix(scriptPath, ".py") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidServerScript, scriptPath)
	}

	if lookup == nil {
		lookup = exec.LookPath
	}
	if _, err := lookup(scfg.Command); err != nil {
		return nil, fmt.Errorf("required runtime %q not found in PATH", scfg.Command)
	}

	env := make([]string, 0, len(scfg.Env))
	for k, v := range scfg.Env {
		env = append(env, k+"="+v)
	}

	c, err := mcpclient.NewStdioMCPClient(scfg.Command, env, scriptPath)
	if err != nil {
		return nil, fmt.Errorf("creating stdio client: %w", err)
	}

	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2025-11-25",
			ClientInfo: mcp.Implementation{
				Name:    "mcpchat",
				Version: "0.1.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}); err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing: %w", err)
	}

	return &Session{client: c}, nil
}

// ListTools fetches the server's current tool list. Nothing is cached:
// every call reflects the subprocess's live state.
func (s *Session) ListTools(ctx context.Context) ([]ToolInfo, error) {
	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return toToolInfos(result.Tools), nil
}

// CallTool invokes a tool on the server and blocks until it responds.
// No deadline is applied; an unresponsive server blocks the caller.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return s.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
}

// Close shuts down the subprocess and its transport. Safe to call more
// than once; only the first call does the work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}

func toToolInfos(tools []mcp.Tool) []ToolInfo {
	infos := make([]ToolInfo, len(tools))
	for i, t := range tools {
		schema, _ := marshalInputSchema(t)
		infos[i] = ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		}
	}
	return infos
}

func marshalInputSchema(t mcp.Tool) (json.RawMessage, error) {
	if len(t.RawInputSchema) > 0 {
		return t.RawInputSchema, nil
	}
	b, err := json.Marshal(t.InputSchema)
	return b, err
}
