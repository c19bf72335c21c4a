// Package chat drives the interactive read-query-print cycle.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lydakis/mcpchat/internal/gateway"
	"github.com/lydakis/mcpchat/internal/registry"
	"github.com/lydakis/mcpchat/internal/response"
	"github.com/lydakis/mcpchat/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Session is the tool server surface the loop needs.
type Session interface {
	ListTools(ctx context.Context) ([]session.ToolInfo, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
}

// Gateway is the model surface the loop needs.
type Gateway interface {
	Chat(ctx context.Context, query string, tools []registry.FunctionDef) (gateway.Reply, error)
}

// Loop reads queries, consults the model and executes requested tool
// calls until the user quits.
type Loop struct {
	Session Session
	Gateway Gateway
	In      io.Reader
	Out     io.Writer
}

// Run blocks until the quit sentinel or end of input. Errors inside a
// single query are printed and the loop keeps going; only input
// exhaustion or a read failure ends it with an error.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.Out, "Type your queries or 'quit' to exit.")

	scanner := bufio.NewScanner(l.In)
	for {
		fmt.Fprint(l.Out, "\nQuery: ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "quit") {
			return nil
		}

		if err := l.processQuery(ctx, query); err != nil {
			fmt.Fprintf(l.Out, "\nError: %v\n", err)
		}
	}
}

// processQuery runs one full pipeline pass: fresh tool list, one model
// request, then either tool execution or plain text output.
func (l *Loop) processQuery(ctx context.Context, query string) error {
	tools, err := l.Session.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("listing tools: %w", err)
	}

	reply, err := l.Gateway.Chat(ctx, query, registry.FunctionDefs(tools))
	if err != nil {
		return err
	}

	if reply.Kind == gateway.ReplyToolCalls {
		return l.runToolCalls(ctx, reply.Calls)
	}

	fmt.Fprintf(l.Out, "\nModel: %s\n", reply.Text)
	return nil
}

func (l *Loop) runToolCalls(ctx context.Context, calls []gateway.ToolCall) error {
	for _, call := range calls {
		name := call.ToolName()

		// Undecodable arguments abort the whole batch; the error is
		// reported at the loop boundary and the session survives.
		args, err := call.ArgumentsMap()
		if err != nil {
			return err
		}

		fmt.Fprintf(l.Out, "\nRunning tool %q with arguments: %v\n", name, args)

		result, err := l.Session.CallTool(ctx, name, args)
		if err != nil {
			return fmt.Errorf("calling tool %q: %w", name, err)
		}

		fmt.Fprintf(l.Out, "\nResult from %s:\n%s\n", name, response.Render(result))
	}
	return nil
}
