package slackmsg

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jamesprial/go-slack-messages/internal"
	pkgerrs "github.com/jamesprial/go-slack-messages/pkg/errors"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

const (
	// DefaultBaseURL is the default chat API base URL
	DefaultBaseURL = "https://slack.com/api/"
	// DefaultTimeout is the timeout of the HTTP client created when none is supplied
	DefaultTimeout = 30 * time.Second
)

// HTTPClient is the transport the client sends requests through.
// *http.Client satisfies it; substitute your own to add tracing, record
// fixtures in tests, or route through a proxy.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Dispatcher executes one authenticated call against a named endpoint and
// returns the decoded response. Every facade in this package sends its
// requests through a Dispatcher; tests can substitute their own.
type Dispatcher interface {
	Execute(ctx context.Context, method, endpoint string, payload types.Payload) (types.Envelope, error)
}

// Config holds the configuration for the client.
//
// Only Token is required:
//
//	config := &Config{Token: os.Getenv("SLACK_TOKEN")}
//
// To substitute the transport (for timeouts, proxies or tests):
//
//	config := &Config{
//		Token:      token,
//		HTTPClient: &http.Client{Timeout: 10 * time.Second},
//		Logger:     slog.Default(),
//	}
type Config struct {
	// Token is the bot or user OAuth token sent as "Authorization: Bearer <Token>".
	// Required.
	Token string

	// BaseURL of the chat API.
	// Defaults to DefaultBaseURL if not specified. Endpoints are resolved
	// relative to it, so a path component must end with a slash or will gain one.
	BaseURL string

	// HTTPClient to use for requests.
	// Defaults to an *http.Client with DefaultTimeout if not specified.
	// The client attempts each request once; any retry or timeout policy
	// belongs to this transport.
	HTTPClient HTTPClient

	// Logger for structured diagnostics.
	// Optional. If nil, nothing is logged. Tokens are never logged.
	Logger *slog.Logger
}

// Option customizes a Config built by NewClient and the facade constructors.
type Option func(*Config)

// WithHTTPClient sets the transport used to send requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Config) {
		c.HTTPClient = httpClient
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Client is the chat API client. It groups the four operation families as
// fields and also exposes every operation directly:
//
//	client, err := slackmsg.NewClient(token)
//	if err != nil {
//		return err
//	}
//
//	env, err := client.SendMessage(ctx, "C123", "hello")
//	// same as client.Messages.SendMessage(ctx, "C123", "hello")
//
// All facades share one Dispatcher. A Client holds no mutable state after
// construction and is safe for concurrent use when its HTTPClient is.
type Client struct {
	Messages  *MessageSender
	Ephemeral *EphemeralSender
	Scheduled *ScheduledMessages
	Reactions *Reactions

	dispatcher Dispatcher
}

// NewClient creates a client authenticated with token.
//
// Returns a *errors.ConfigError if:
//   - token is empty or contains whitespace or control characters
//   - the base URL is not an absolute URL
//
// No request is made during construction.
func NewClient(token string, opts ...Option) (*Client, error) {
	config := &Config{Token: token}
	for _, opt := range opts {
		opt(config)
	}
	return NewClientFromConfig(config)
}

// NewClientFromConfig creates a client from config. The config is copied;
// later changes to it do not affect the client.
func NewClientFromConfig(config *Config) (*Client, error) {
	dispatcher, err := newDispatcher(config)
	if err != nil {
		return nil, err
	}
	return NewClientWithDispatcher(dispatcher), nil
}

// NewClientWithDispatcher creates a client whose facades send every call
// through dispatcher. Use it to substitute the request layer entirely.
func NewClientWithDispatcher(dispatcher Dispatcher) *Client {
	validator := internal.NewValidator()
	return &Client{
		Messages:   &MessageSender{dispatcher: dispatcher, validator: validator},
		Ephemeral:  &EphemeralSender{dispatcher: dispatcher, validator: validator},
		Scheduled:  &ScheduledMessages{dispatcher: dispatcher, validator: validator},
		Reactions:  &Reactions{dispatcher: dispatcher, validator: validator},
		dispatcher: dispatcher,
	}
}

// Execute sends a call to an arbitrary endpoint through the client's
// dispatcher. It is the escape hatch for endpoints without a typed method;
// GET parameters must already be encoded into endpoint.
func (c *Client) Execute(ctx context.Context, method, endpoint string, payload types.Payload) (types.Envelope, error) {
	return c.dispatcher.Execute(ctx, method, endpoint, payload)
}

// newDispatcher validates config, applies defaults and builds the shared
// request dispatcher.
func newDispatcher(config *Config) (*internal.Dispatcher, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}

	cfg := *config
	if err := internal.NewValidator().ValidateToken(cfg.Token); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	return internal.NewDispatcher(cfg.HTTPClient, cfg.Token, cfg.BaseURL, cfg.Logger)
}
