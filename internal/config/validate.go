package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	u, err := url.Parse(cfg.OllamaURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("ollama_url %q: %w", cfg.OllamaURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("ollama_url %q: scheme must be http or https", cfg.OllamaURL))
	}

	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, errors.New("model must not be blank"))
	}
	if strings.TrimSpace(cfg.Server.Command) == "" {
		errs = append(errs, errors.New("server.command must not be blank"))
	}

	for name := range cfg.Headers {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("headers: blank header name"))
			continue
		}
		if strings.ContainsAny(name, " :") {
			errs = append(errs, fmt.Errorf("headers: invalid header name %q", name))
		}
	}

	return errors.Join(errs...)
}
