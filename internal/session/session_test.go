package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lydakis/mcpchat/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestConnectRejectsNonPythonScriptBeforeSpawning(t *testing.T) {
	lookupCalled := false
	lookup := func(string) (string, error) {
		lookupCalled = true
		return "/usr/bin/python", nil
	}

	for _, path := range []string{"server.js", "server", "server.pyc", "server.py.bak"} {
		_, err := connectWithLookup(context.Background(), config.ServerConfig{Command: "python"}, path, lookup)
		if !errors.Is(err, ErrInvalidServerScript) {
			t.Errorf("connect(%q) error = %v, want ErrInvalidServerScript", path, err)
		}
	}

	if lookupCalled {
		t.Fatal("interpreter lookup ran for an invalid script path")
	}
}

func TestConnectFailsWhenInterpreterNotOnPath(t *testing.T) {
	lookup := func(file string) (string, error) {
		return "", errors.New("not found")
	}

	_, err := connectWithLookup(context.Background(), config.ServerConfig{Command: "python"}, "server.py", lookup)
	if err == nil {
		t.Fatal("connect() error = nil, want missing-runtime error")
	}
	if errors.Is(err, ErrInvalidServerScript) {
		t.Fatalf("connect() error = %v, want a runtime error, not ErrInvalidServerScript", err)
	}
}

func TestToToolInfosPreservesOrderAndSchema(t *testing.T) {
	tools := []mcp.Tool{
		{Name: "get_weather", Description: "Current weather", RawInputSchema: json.RawMessage(`{"type":"object"}`)},
		{Name: "get_time", Description: ""},
	}

	infos := toToolInfos(tools)
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	if infos[0].Name != "get_weather" || infos[1].Name != "get_time" {
		t.Fatalf("tool order = [%s %s], want [get_weather get_time]", infos[0].Name, infos[1].Name)
	}
	if string(infos[0].InputSchema) != `{"type":"object"}` {
		t.Fatalf("InputSchema = %s, want raw schema passed through", infos[0].InputSchema)
	}
	if infos[0].Description != "Current weather" {
		t.Fatalf("Description = %q, want %q", infos[0].Description, "Current weather")
	}
}

func TestMarshalInputSchemaPrefersRawSchema(t *testing.T) {
	raw := json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`)
	got, err := marshalInputSchema(mcp.Tool{RawInputSchema: raw})
	if err != nil {
		t.Fatalf("marshalInputSchema() error = %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("schema = %s, want %s", got, raw)
	}
}
