package fr24feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	jsoniter "github.com/json-iterator/go"

	"github.com/slim-bean/check-fr24feed/pkg/model"
)

// Numbers are decoded as json.Number so integer timestamps survive intact.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Failure kinds reported by Fetch.
const (
	KindInvalidURL      = "InvalidURL"
	KindConnection      = "ConnectionError"
	KindTimeout         = "Timeout"
	KindRead            = "ReadError"
	KindJSONDecodeError = "JSONDecodeError"
)

// Error describes why the monitor endpoint could not be read.
type Error struct {
	Kind string
	Err  error
}

func (e *Error) Error() string {
	return e.Kind + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client reads monitor.json from a single feeder.
type Client struct {
	url    string
	client *http.Client
	logger log.Logger
}

func New(logger log.Logger, url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{},
		logger: log.With(logger, "component", "fr24feed"),
	}
}

// Fetch performs one GET against the monitor endpoint. A body that decodes
// to anything other than a JSON object yields an empty Snapshot.
func (c *Client) Fetch(ctx context.Context) (model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	level.Debug(c.logger).Log("msg", "fetching monitor endpoint", "url", c.url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: err}
	}
	level.Debug(c.logger).Log("msg", "monitor endpoint responded", "status", resp.StatusCode, "bytes", len(body))

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &Error{Kind: KindJSONDecodeError, Err: err}
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		level.Warn(c.logger).Log("msg", "monitor endpoint did not return an object", "type", fmt.Sprintf("%T", v))
		return model.Snapshot{}, nil
	}
	return model.Snapshot(obj), nil
}

func classify(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindConnection
}
