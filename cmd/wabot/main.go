package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/a-h/wabot/config"
	"github.com/a-h/wabot/wolfram"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag values from a YAML file."`
	Serve   ServeCommand    `cmd:"serve" help:"Start the bot server, which receives chat messages from gateways."`
	Query   QueryCommand    `cmd:"query" help:"Query Wolfram|Alpha and print the answer."`
	Send    SendCommand     `cmd:"send" help:"Send a chat message to a bot server."`
	Chat    ChatCommand     `cmd:"chat" help:"Chat with a bot server."`
	Version VersionCommand  `cmd:"version" help:"Print the version of the bot."`
}

// BotFlags configure how queries are answered.
type BotFlags struct {
	APIKey        string        `help:"The Wolfram|Alpha API key (app ID)." env:"WOLFRAM_API_KEY" default:""`
	MaxOutput     int           `help:"Maximum lines to print at once." env:"WOLFRAM_MAX_OUTPUT"`
	Endpoint      string        `help:"The Wolfram|Alpha query API URL." env:"WOLFRAM_ENDPOINT" default:"${endpoint}"`
	Timeout       time.Duration `help:"Timeout for each API request, 0 for none." env:"WOLFRAM_TIMEOUT" default:"0s"`
	BridgeNick    string        `help:"Nick of a bridge bot to accept relayed commands from." env:"BRIDGE_NICK" default:""`
	CommandPrefix string        `help:"The prefix of bot commands." env:"COMMAND_PREFIX" default:"."`
}

func (f BotFlags) config(style string) (cfg config.Config, err error) {
	cfg = config.Config{
		APIKey:        f.APIKey,
		MaxOutput:     f.MaxOutput,
		BridgeNick:    f.BridgeNick,
		CommandPrefix: f.CommandPrefix,
		Endpoint:      f.Endpoint,
		Style:         style,
		Timeout:       f.Timeout,
	}
	return cfg, cfg.Validate()
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli,
		kong.UsageOnError(),
		kong.Configuration(config.YAML, "~/.config/wabot/config.yaml", "wabot.yaml"),
		kong.Vars{"endpoint": wolfram.DefaultEndpoint},
		kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
