// Package rest holds the thin per-resource request helpers: they build URLs,
// attach the credential header, serialize bodies, and decode the uniform
// response envelope. All resilience lives one layer down in transport.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/core"
	"github.com/goliatone/go-storefront/transport"
)

// Transport is the slice of the resilient client this package needs.
type Transport interface {
	Do(ctx context.Context, req transport.Request) (transport.Response, error)
}

type Client struct {
	baseURL     string
	tokenHeader string
	transport   Transport
	tokens      core.TokenStore
	logger      core.Logger
}

type Option func(*Client)

func WithLogger(logger core.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTokenStore installs the credential source used for authorized
// endpoints. Without one, every authorized call fails with an
// authentication-required error.
func WithTokenStore(tokens core.TokenStore) Option {
	return func(c *Client) { c.tokens = tokens }
}

func New(cfg core.Config, doer Transport, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if doer == nil {
		return nil, goerrors.New("rest: transport is required", goerrors.CategoryInternal).
			WithTextCode(core.ErrorInternal)
	}
	client := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		tokenHeader: strings.TrimSpace(cfg.TokenHeader),
		transport:   doer,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(client)
	}
	return client, nil
}

type call struct {
	method string
	path   string
	query  map[string]string
	body   any
	authed bool
}

// do runs one API call end to end: URL + headers + body, transport
// round-trip, envelope decode, and failure-status translation.
func (c *Client) do(ctx context.Context, in call) (core.Envelope, error) {
	if c == nil || c.transport == nil {
		return core.Envelope{}, goerrors.New("rest: client is not configured", goerrors.CategoryInternal).
			WithTextCode(core.ErrorInternal)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(in.path, "/")
	headers := map[string]string{"Accept": "application/json"}

	var payload []byte
	if in.body != nil {
		encoded, err := json.Marshal(in.body)
		if err != nil {
			return core.Envelope{}, goerrors.Wrap(err, goerrors.CategoryInternal, "rest: encode request body").
				WithTextCode(core.ErrorInternal)
		}
		payload = encoded
		headers["Content-Type"] = "application/json"
	}

	if in.authed {
		token, err := c.token(ctx)
		if err != nil {
			return core.Envelope{}, err
		}
		headers[c.tokenHeader] = token
	}

	res, err := c.transport.Do(ctx, transport.Request{
		Method:  in.method,
		URL:     endpoint,
		Headers: headers,
		Query:   in.query,
		Body:    payload,
	})
	if err != nil {
		return core.Envelope{}, err
	}

	env, err := core.DecodeEnvelope(res.Body)
	if err != nil {
		return core.Envelope{}, err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return core.Envelope{}, core.APIError(env.Message, res.StatusCode, in.path)
	}
	// a 2xx body can still carry an explicit error/fail status
	if env.Status != "" && !env.OK() {
		return core.Envelope{}, core.APIError(env.Message, res.StatusCode, in.path)
	}
	return env, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", core.AuthRequiredError("rest")
	}
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "rest: read credential").
			WithTextCode(core.ErrorInternal)
	}
	if strings.TrimSpace(token) == "" {
		return "", core.AuthRequiredError("rest")
	}
	return token, nil
}

func requireID(name string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", core.BadInputError("rest: " + name + " is required")
	}
	return value, nil
}
