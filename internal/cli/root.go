// Package cli wires configuration, the tool server session and the
// chat loop into the mcpchat command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lydakis/mcpchat/internal/chat"
	"github.com/lydakis/mcpchat/internal/config"
	"github.com/lydakis/mcpchat/internal/gateway"
	"github.com/lydakis/mcpchat/internal/session"
)

// Exit codes.
const (
	exitOK       = 0
	exitRunErr   = 1
	exitUsageErr = 2
)

var (
	rootStdin  io.Reader = os.Stdin
	rootStdout io.Writer = os.Stdout
	rootStderr io.Writer = os.Stderr
)

// sessionHandle is what Run needs from a connected session.
type sessionHandle interface {
	chat.Session
	Close() error
}

// connect is swapped out in tests.
var connect = func(ctx context.Context, scfg config.ServerConfig, scriptPath string) (sessionHandle, error) {
	return session.Connect(ctx, scfg, scriptPath)
}

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	if handled, code := handleRootFlags(args); handled {
		return code
	}

	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, errNoScript) {
			printRootHelp(rootStdout)
		} else {
			fmt.Fprintf(rootStderr, "mcpchat: %v\n", err)
		}
		return exitUsageErr
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(rootStderr, "mcpchat: %v\n", err)
		return exitRunErr
	}
	opts.apply(cfg)

	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(rootStderr, "mcpchat: invalid config: %v\n", verr)
		return exitUsageErr
	}

	ctx := context.Background()

	sess, err := connect(ctx, cfg.Server, opts.script)
	if err != nil {
		fmt.Fprintf(rootStderr, "mcpchat: %v\n", err)
		if errors.Is(err, session.ErrInvalidServerScript) {
			return exitUsageErr
		}
		return exitRunErr
	}
	defer sess.Close()

	tools, err := sess.ListTools(ctx)
	if err != nil {
		fmt.Fprintf(rootStderr, "mcpchat: listing tools: %v\n", err)
		return exitRunErr
	}
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	fmt.Fprintf(rootStdout, "Connected to server with tools: %s\n", strings.Join(names, ", "))

	loop := &chat.Loop{
		Session: sess,
		Gateway: gateway.New(cfg),
		In:      rootStdin,
		Out:     rootStdout,
	}
	if err := loop.Run(ctx); err != nil {
		fmt.Fprintf(rootStderr, "mcpchat: %v\n", err)
		return exitRunErr
	}
	return exitOK
}
