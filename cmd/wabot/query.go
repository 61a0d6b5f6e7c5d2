package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/a-h/wabot/format"
	"github.com/a-h/wabot/relay"
	"github.com/a-h/wabot/wolfram"
	"github.com/muesli/reflow/wordwrap"
)

type QueryCommand struct {
	Bot      BotFlags `embed:""`
	Style    string   `help:"How to style output: irc, ansi or plain." env:"STYLE" default:"ansi" enum:"irc,ansi,plain"`
	Nick     string   `help:"The nick that errors are addressed to." default:"you"`
	Width    int      `help:"Wrap output at this width, 0 to disable." default:"100"`
	LogLevel string   `help:"The log level to use." env:"LOG_LEVEL" default:"warn"`
	Text     []string `arg:"" help:"The query. Put -- before modifiers, e.g. wabot query -- --num 3 next full moon." passthrough:""`
}

func (c QueryCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	cfg, err := c.Bot.config(c.Style)
	if err != nil {
		return err
	}
	styler, err := format.ByName(cfg.Style)
	if err != nil {
		return err
	}
	r := relay.New(log, cfg, wolfram.New(cfg.Endpoint, cfg.APIKey), styler)
	say := relay.SayerFunc(func(line string) {
		if c.Width > 0 {
			line = wordwrap.String(line, c.Width)
		}
		fmt.Fprintln(os.Stdout, line)
	})
	r.Handle(ctx, strings.Join(c.Text, " "), c.Nick, say)
	return nil
}
