package config

// Config is the top-level mcpchat configuration.
// Every field has a default; an absent config file yields a fully
// usable Config.
type Config struct {
	Model        string            `toml:"model"`
	OllamaURL    string            `toml:"ollama_url"`
	SystemPrompt string            `toml:"system_prompt"`
	Headers      map[string]string `toml:"headers"`
	Server       ServerConfig      `toml:"server"`
}

// ServerConfig describes how the tool server subprocess is launched.
type ServerConfig struct {
	// Command is the interpreter used to run the server script.
	Command string            `toml:"command"`
	Env     map[string]string `toml:"env"`
}

// Defaults reproduce the stock setup: a local Ollama instance serving
// qwen2.5:7b and a Python tool server.
const (
	DefaultModel     = "qwen2.5:7b"
	DefaultOllamaURL = "http://localhost:11434"
	DefaultCommand   = "python"

	DefaultSystemPrompt = "You can answer the user's questions normally. " +
		"If any of the available tools can help you answer better, use it. " +
		"Otherwise, do not use any tool."
)

func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = DefaultOllamaURL
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Server.Command == "" {
		cfg.Server.Command = DefaultCommand
	}
}
