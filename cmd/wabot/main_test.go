package main

import (
	"testing"

	"github.com/a-h/wabot/wolfram"
	"github.com/alecthomas/kong"
)

func parse(t *testing.T, args ...string) CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"endpoint": wolfram.DefaultEndpoint})
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	if _, err = parser.Parse(args); err != nil {
		t.Fatalf("failed to parse %v: %v", args, err)
	}
	return cli
}

func TestBotFlagsConfig(t *testing.T) {
	cli := parse(t, "serve", "--api-key", "abc", "--max-output", "3", "--bridge-nick", "relaybot")
	cfg, err := cli.Serve.Bot.config(cli.Serve.Style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != wolfram.DefaultEndpoint {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.CommandPrefix != "." {
		t.Errorf("expected default prefix, got %q", cfg.CommandPrefix)
	}
	if cfg.Style != "irc" {
		t.Errorf("expected irc style for the server, got %q", cfg.Style)
	}
	if cfg.MaxOutput != 3 || cfg.APIKey != "abc" || cfg.BridgeNick != "relaybot" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestBotFlagsConfigRequiresMaxOutput(t *testing.T) {
	cli := parse(t, "query", "pi")
	if _, err := cli.Query.Bot.config(cli.Query.Style); err == nil {
		t.Error("expected error when max output is not set")
	}
}
