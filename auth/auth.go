package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// New requires requests to carry one of the API keys in apiKeyToGateway. Each
// key identifies the chat gateway, e.g. an IRC connection, that forwards messages.
func New(log *slog.Logger, apiKeyToGateway map[string]string, next http.Handler) *Auth {
	return &Auth{
		Log:             log,
		Next:            next,
		APIKeyToGateway: apiKeyToGateway,
	}
}

type Auth struct {
	Log             *slog.Logger
	Next            http.Handler
	APIKeyToGateway map[string]string
}

// LoadFromFile reads a JSON map of API keys to gateway names. Empty keys and
// empty gateway names are rejected.
func LoadFromFile(name string) (apiKeyToGateway map[string]string, err error) {
	f, err := os.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := make(map[string]string)
	if err = json.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	for key, gateway := range m {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%s: empty API key for gateway %q", name, gateway)
		}
		if strings.TrimSpace(gateway) == "" {
			return nil, fmt.Errorf("%s: API key has no gateway name", name)
		}
	}
	return m, nil
}

type gatewayContextKey int

const gatewayKey gatewayContextKey = 0

func GetGateway(r *http.Request) (gateway string, ok bool) {
	gateway, ok = r.Context().Value(gatewayKey).(string)
	return
}

func (a *Auth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := a.Log.With(slog.String("remoteAddr", r.RemoteAddr))
	key := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if key == "" {
		log.Warn("rejected request without an API key")
		http.Error(w, "missing API key", http.StatusUnauthorized)
		return
	}
	gateway, ok := a.APIKeyToGateway[key]
	if !ok || gateway == "" {
		log.Warn("rejected request with an unknown API key")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	log.Debug("gateway authenticated", slog.String("gateway", gateway))
	r = r.WithContext(context.WithValue(r.Context(), gatewayKey, gateway))
	a.Next.ServeHTTP(w, r)
}
