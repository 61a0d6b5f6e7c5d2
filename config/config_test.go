package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
)

func validConfig() Config {
	return Config{
		MaxOutput:     3,
		CommandPrefix: ".",
		Endpoint:      "http://api.wolframalpha.com/v2/query",
		Style:         "irc",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:   "valid configuration passes",
			modify: func(c *Config) {},
		},
		{
			name:   "a missing API key is not a startup error",
			modify: func(c *Config) { c.APIKey = "" },
		},
		{
			name:    "MaxOutput must be positive",
			modify:  func(c *Config) { c.MaxOutput = 0 },
			wantErr: true,
		},
		{
			name:    "the command prefix is required",
			modify:  func(c *Config) { c.CommandPrefix = "" },
			wantErr: true,
		},
		{
			name:    "the endpoint must be a URL",
			modify:  func(c *Config) { c.Endpoint = "api.wolframalpha.com" },
			wantErr: true,
		},
		{
			name:    "the style must be known",
			modify:  func(c *Config) { c.Style = "html" },
			wantErr: true,
		},
		{
			name:    "the timeout cannot be negative",
			modify:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

type testCLI struct {
	APIKey     string        `env:"TEST_WABOT_API_KEY" default:""`
	MaxOutput  int           `default:"3"`
	BridgeNick string        `default:""`
	Timeout    time.Duration `default:"0s"`
}

func TestYAML(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "wabot.yaml")
	content := "api-key: abc123\nmax_output: 5\ntimeout: 10s\n"
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(YAML, name))
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	if _, err = parser.Parse([]string{"--bridge-nick", "relaybot"}); err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if cli.APIKey != "abc123" {
		t.Errorf("expected API key from file, got %q", cli.APIKey)
	}
	if cli.MaxOutput != 5 {
		t.Errorf("expected max output 5 from file, got %d", cli.MaxOutput)
	}
	if cli.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s from file, got %v", cli.Timeout)
	}
	if cli.BridgeNick != "relaybot" {
		t.Errorf("expected bridge nick from flags, got %q", cli.BridgeNick)
	}
}

func TestYAMLRejectsNestedValues(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "wabot.yaml")
	if err := os.WriteFile(name, []byte("max-output:\n  - 1\n  - 2\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(YAML, name))
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	if _, err = parser.Parse(nil); err == nil {
		t.Error("expected error for a list value")
	}
}
