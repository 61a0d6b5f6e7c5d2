package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/a-h/wabot/relay"
)

// Commands that trigger a query.
var Commands = []string{"wa", "wolfram", "wolframalpha"}

// Message received from the chat.
type Message struct {
	// Nick of the sender.
	Nick string
	Text string
}

type Handler interface {
	Handle(ctx context.Context, text, target string, out relay.Sayer)
}

func New(log *slog.Logger, h Handler, prefix, bridgeNick string) *Plugin {
	commands := strings.Join(Commands, "|")
	p := regexp.QuoteMeta(prefix)
	return &Plugin{
		log:        log,
		handler:    h,
		prefix:     prefix,
		bridgeNick: bridgeNick,
		direct:     regexp.MustCompile(fmt.Sprintf(`^%s(?:%s)(?:\s+(.*))?$`, p, commands)),
		search:     regexp.MustCompile(fmt.Sprintf(`%s(?:%s)\s`, p, commands)),
		bridged:    regexp.MustCompile(fmt.Sprintf(`^(.*?): %s(?:%s)\s(.*)$`, p, commands)),
	}
}

// Plugin routes chat messages to the query handler.
type Plugin struct {
	log        *slog.Logger
	handler    Handler
	prefix     string
	bridgeNick string
	// direct matches ".wa <query>" sent by the user.
	direct *regexp.Regexp
	// search finds a command anywhere in a bridged message.
	search *regexp.Regexp
	// bridged extracts the real nick and query from "<nick>: .wa <query>".
	bridged *regexp.Regexp
}

// Dispatch handles msg if it is addressed to the plugin, and returns true if it was.
func (p *Plugin) Dispatch(ctx context.Context, msg Message, out relay.Sayer) (handled bool) {
	text := strings.TrimSpace(msg.Text)
	if m := p.direct.FindStringSubmatch(text); m != nil {
		query := strings.TrimSpace(m[1])
		if query == "" {
			out.Say(fmt.Sprintf("%s: usage: %s%s %s", msg.Nick, p.prefix, Commands[0], relay.Usage))
			return true
		}
		p.handler.Handle(ctx, query, msg.Nick, out)
		return true
	}
	if p.bridgeNick == "" || msg.Nick != p.bridgeNick || !p.search.MatchString(text) {
		return false
	}
	m := p.bridged.FindStringSubmatch(text)
	if m == nil {
		p.log.Warn("ignoring bridged message that does not match the expected format", slog.String("nick", msg.Nick), slog.String("text", text))
		return false
	}
	nick, query := m[1], strings.TrimSpace(m[2])
	if nick == "" || query == "" {
		p.log.Warn("ignoring bridged message without a nick or query", slog.String("text", text))
		return false
	}
	p.handler.Handle(ctx, query, nick, out)
	return true
}
