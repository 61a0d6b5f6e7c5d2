package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/wabot/auth"
	"github.com/a-h/wabot/format"
	messagespost "github.com/a-h/wabot/handlers/messages/post"
	"github.com/a-h/wabot/plugin"
	"github.com/a-h/wabot/relay"
	"github.com/a-h/wabot/wolfram"
	"github.com/rs/cors"
)

type ServeCommand struct {
	Bot         BotFlags `embed:""`
	Style       string   `help:"How to style output: irc, ansi or plain." env:"STYLE" default:"irc" enum:"irc,ansi,plain"`
	ListenAddr  string   `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:9030"`
	TLSCertFile string   `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile  string   `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	APIKeysFile string   `help:"The file containing a JSON map of API keys to gateway names." env:"API_KEYS_FILE" default:"apikeys.json"`
	LogLevel    string   `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	cfg, err := c.Bot.config(c.Style)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		log.Warn("Wolfram|Alpha API key not set, queries will be refused")
	}
	styler, err := format.ByName(cfg.Style)
	if err != nil {
		return err
	}

	wac := wolfram.New(cfg.Endpoint, cfg.APIKey)
	r := relay.New(log, cfg, wac, styler)
	p := plugin.New(log, r, cfg.CommandPrefix, cfg.BridgeNick)
	if cfg.BridgeNick != "" {
		log.Info("accepting bridged commands", slog.String("nick", cfg.BridgeNick))
	}

	mux := http.NewServeMux()
	mux.Handle("POST /messages", messagespost.New(log, p))

	apiKeyToGateway, err := auth.LoadFromFile(c.APIKeysFile)
	if err != nil {
		return fmt.Errorf("failed to load API keys: %w", err)
	}
	authenticatedMux := auth.New(log, apiKeyToGateway, mux)
	withCORSAuthenticatedMux := cors.AllowAll().Handler(authenticatedMux)

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: withCORSAuthenticatedMux,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
