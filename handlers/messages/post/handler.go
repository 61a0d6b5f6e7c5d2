package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/a-h/wabot/auth"
	"github.com/a-h/wabot/models"
	"github.com/a-h/wabot/plugin"
	"github.com/a-h/wabot/relay"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, msg plugin.Message, out relay.Sayer) (handled bool)
}

func New(log *slog.Logger, d Dispatcher) Handler {
	return Handler{
		log:        log,
		dispatcher: d,
	}
}

// Handler receives chat messages from a gateway and returns the lines to say.
type Handler struct {
	log        *slog.Logger
	dispatcher Dispatcher
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gateway, ok := auth.GetGateway(r)
	if !ok {
		http.Error(w, "authentication not provided", http.StatusUnauthorized)
		return
	}

	var req models.MessagesPostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if req.Nick == "" {
		respond.WithError(w, "nick is required", http.StatusBadRequest)
		return
	}

	resp := models.MessagesPostResponse{
		Lines: []string{},
	}
	collect := relay.SayerFunc(func(line string) {
		resp.Lines = append(resp.Lines, line)
	})
	handled := h.dispatcher.Dispatch(r.Context(), plugin.Message{
		Nick: req.Nick,
		Text: req.Text,
	}, collect)
	if handled {
		h.log.Info("message handled", slog.String("gateway", gateway), slog.String("nick", req.Nick), slog.Int("lines", len(resp.Lines)))
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
