package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lydakis/mcpchat/internal/config"
)

var errNoScript = errors.New("missing server script path")

// options are the command-line overrides on top of the config file.
type options struct {
	script string
	model  string
	url    string
}

func (o options) apply(cfg *config.Config) {
	if o.model != "" {
		cfg.Model = o.model
	}
	if o.url != "" {
		cfg.OllamaURL = o.url
	}
}

func parseArgs(args []string) (options, error) {
	var opts options
	var positionals []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--model" || arg == "-m":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			opts.model = args[i]
		case arg == "--url" || arg == "-u":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			opts.url = args[i]
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("unknown flag: %s", arg)
		default:
			positionals = append(positionals, arg)
		}
	}

	switch len(positionals) {
	case 0:
		return opts, errNoScript
	case 1:
		opts.script = positionals[0]
		return opts, nil
	default:
		return opts, fmt.Errorf("expected one server script path, got %d arguments", len(positionals))
	}
}
