package relay

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/a-h/wabot/answer"
	"github.com/a-h/wabot/config"
	"github.com/a-h/wabot/format"
	"github.com/a-h/wabot/models"
	"github.com/a-h/wabot/wolfram"
)

// Sayer sends a line of text to the chat.
type Sayer interface {
	Say(line string)
}

type SayerFunc func(line string)

func (f SayerFunc) Say(line string) { f(line) }

type Querier interface {
	Query(ctx context.Context, req wolfram.Request) (models.QueryResult, error)
}

func New(log *slog.Logger, cfg config.Config, querier Querier, styler format.Styler) *Relay {
	return &Relay{
		log:     log,
		cfg:     cfg,
		querier: querier,
		styler:  styler,
	}
}

// Relay sends queries to Wolfram|Alpha and says the answers.
type Relay struct {
	log     *slog.Logger
	cfg     config.Config
	querier Querier
	styler  format.Styler
}

// Usage of the query text accepted by Handle.
const Usage = "[--num #|--reinterpret|--usemetric|--shortest|--fulloutput] <query>"

type modifiers struct {
	num         int
	reinterpret bool
	metric      bool
	shortest    bool
	fullOutput  bool
}

// parseModifiers parses leading flags from the query text. If the text doesn't
// parse, e.g. "-1 + 2", it is used unchanged as the query. The whitespace
// inside the query is kept as written.
func parseModifiers(text string, maxOutput int) (m modifiers, query string) {
	flags := flag.NewFlagSet("wa", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&m.num, "num", maxOutput, "Number of lines to display.")
	flags.BoolVar(&m.reinterpret, "reinterpret", true, "Reinterpret queries that are not understood.")
	flags.BoolVar(&m.metric, "usemetric", false, "Use metric units.")
	flags.BoolVar(&m.shortest, "shortest", false, "Display the shortest output.")
	flags.BoolVar(&m.fullOutput, "fulloutput", false, "Display all output.")
	fields := strings.Fields(text)
	if err := flags.Parse(fields); err != nil || m.num < 1 {
		return modifiers{num: maxOutput, reinterpret: true}, strings.TrimSpace(text)
	}
	return m, dropFields(text, len(fields)-flags.NArg())
}

// dropFields removes the first n whitespace separated fields from text.
func dropFields(text string, n int) string {
	for range n {
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
		i := strings.IndexFunc(text, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		text = text[i:]
	}
	return strings.TrimSpace(text)
}

// Handle answers the query, saying each line of output. Lines that report
// problems are addressed to target.
func (r *Relay) Handle(ctx context.Context, text, target string, out Sayer) {
	log := r.log.With(slog.String("target", target))
	if r.cfg.APIKey == "" {
		log.Warn("API key not set")
		out.Say(target + ": API key not set. Contact your bot herder.")
		return
	}
	mods, query := parseModifiers(text, r.cfg.MaxOutput)
	if query == "" {
		log.Info("no query after modifiers", slog.String("text", text))
		out.Say(fmt.Sprintf("%s: usage: %swa %s", target, r.cfg.CommandPrefix, Usage))
		return
	}
	log = log.With(slog.String("query", query))

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	doc, err := r.querier.Query(ctx, wolfram.Request{
		Input:  query,
		Metric: mods.metric,
	})
	if err != nil {
		var de *wolfram.DecodeError
		if errors.As(err, &de) {
			log.Error("failed to decode response", slog.Any("error", err))
			out.Say(fmt.Sprintf("%s: %s Something broke processing the response from the WolframAlpha API.", target, r.styler.Error("ERROR:")))
			return
		}
		endpoint, detail := r.cfg.Endpoint, err
		var te *wolfram.TransportError
		if errors.As(err, &te) {
			endpoint, detail = te.Endpoint, te.Err
		}
		log.Error("failed to query API", slog.String("endpoint", endpoint), slog.Any("error", err))
		out.Say(fmt.Sprintf("%s: %s Failed to open the WolframAlpha API: %s", target, r.styler.Error("ERROR:"), endpoint))
		out.Say(detail.Error())
		return
	}

	a, err := answer.Parse(doc)
	if err != nil {
		log.Error("failed to parse response", slog.Any("error", err))
		out.Say(fmt.Sprintf("%s: %s Something broke processing the response from the WolframAlpha API.", target, r.styler.Error("ERROR:")))
		return
	}
	switch a.Status {
	case answer.StatusFailed:
		log.Error("API returned errors", slog.Any("errors", a.Errors))
		out.Say(fmt.Sprintf("%s: %s Something went wrong processing request for: %s ERROR: %s", target, r.styler.Error("ERROR:"), query, strings.Join(a.Errors, ", ")))
		return
	case answer.StatusUnresolved:
		log.Warn("API could not resolve input", slog.Any("suggestions", a.Suggestions))
		out.Say(fmt.Sprintf("%s: %s with input: %s API returned: %s", target, r.styler.Error("ERROR"), query, strings.Join(a.Suggestions, ", ")))
		return
	}
	if a.Empty() {
		log.Warn("no output")
		out.Say(fmt.Sprintf("%s: %s I received no output looking up: %s", target, r.styler.Error("ERROR:"), query))
		return
	}
	lines := answer.Render(a, answer.Options{
		MaxOutput:  mods.num,
		FullOutput: mods.fullOutput,
		Shortest:   mods.shortest,
	}, r.styler)
	log.Info("answered", slog.Int("sections", len(a.Sections)), slog.Int("lines", len(lines)))
	for _, line := range lines {
		out.Say(line)
	}
}
