package client

import (
	"context"

	"github.com/a-h/jsonapi"
	"github.com/a-h/wabot/models"
)

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Client sends chat messages to a wabot server.
type Client struct {
	baseURL string
	apiKey  string
}

func (c Client) MessagesPost(ctx context.Context, req models.MessagesPostRequest) (resp models.MessagesPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("messages").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.MessagesPostRequest, models.MessagesPostResponse](ctx, url, req, jsonapi.WithRequestHeader("Authorization", c.apiKey))
}
