package wolfram

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/jsonapi"
	"github.com/a-h/wabot/models"
)

// DefaultEndpoint is the Wolfram|Alpha v2 query API.
const DefaultEndpoint = "http://api.wolframalpha.com/v2/query"

func New(endpoint, appID string) Client {
	return Client{
		endpoint: endpoint,
		appID:    appID,
	}
}

type Client struct {
	endpoint string
	appID    string
}

func (c Client) Endpoint() string {
	return c.endpoint
}

type Request struct {
	// Input is the free text query.
	Input string
	// Metric requests metric units instead of the default nonmetric units.
	Metric bool
}

func (r Request) params(appID string) map[string]string {
	units := "nonmetric"
	if r.Metric {
		units = "metric"
	}
	return map[string]string{
		"input":       r.Input,
		"appid":       appID,
		"reinterpret": "true",
		"format":      "plaintext",
		"units":       units,
	}
}

// TransportError is returned when the API could not be reached, or it
// responded with a non-2xx status.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wolfram: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the response body is not a query result document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wolfram: failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (c Client) Query(ctx context.Context, req Request) (result models.QueryResult, err error) {
	url, err := jsonapi.URL(c.endpoint).Query(req.params(c.appID)).String()
	if err != nil {
		return result, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Accept", "application/xml"))
	if err != nil {
		return result, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return result, &TransportError{Endpoint: c.endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return result, &TransportError{
			Endpoint: c.endpoint,
			Err: jsonapi.InvalidStatusError{
				Status: res.StatusCode,
				Body:   string(body),
			},
		}
	}
	if err = xml.Unmarshal(body, &result); err != nil {
		return result, &DecodeError{Err: err}
	}
	return result, nil
}
