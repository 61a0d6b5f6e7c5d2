package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/a-h/wabot/client"
	"github.com/a-h/wabot/models"
)

type SendCommand struct {
	ServerURL    string   `help:"The URL of the bot server." env:"WABOT_SERVER_URL" default:"http://localhost:9030"`
	ServerAPIKey string   `help:"The API key for the bot server." env:"WABOT_SERVER_API_KEY" default:""`
	Nick         string   `help:"The nick to send the message as." env:"NICK" default:"you"`
	LogLevel     string   `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
	Text         []string `arg:"" help:"The message text, e.g. .wa next full moon." passthrough:""`
}

func (c SendCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	wc := client.New(c.ServerURL, c.ServerAPIKey)
	resp, err := wc.MessagesPost(ctx, models.MessagesPostRequest{
		Nick: c.Nick,
		Text: strings.Join(c.Text, " "),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	if len(resp.Lines) == 0 {
		log.Info("the bot did not reply")
	}
	for _, line := range resp.Lines {
		fmt.Println(line)
	}
	log.Debug("message sent", slog.Int("lines", len(resp.Lines)))
	return nil
}
