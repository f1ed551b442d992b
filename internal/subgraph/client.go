// Package subgraph queries The Graph style GraphQL indexers for access-control
// and timelock events.
package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"accessexplorer/internal/platform/logger"
	"accessexplorer/pkg/platform/circuit"
)

const tracerName = "accessexplorer/internal/subgraph"

// Client runs GraphQL queries against one indexer endpoint.
type Client struct {
	endpoint string
	http     *resty.Client
	breaker  *circuit.Breaker
	tracer   trace.Tracer
	metrics  *Metrics
	logger   *slog.Logger
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithHeader sets a header on every request, e.g. an indexer API key.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.http.SetHeader(key, value)
	}
}

// New builds a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http: resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(10 * time.Second),
		breaker: circuit.New(endpoint),
		tracer:  otel.Tracer(tracerName),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the indexer URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query posts a GraphQL document and decodes the data member into out.
func (c *Client) Query(ctx context.Context, name, query string, variables map[string]any, out any) error {
	ctx, span := c.tracer.Start(ctx, "subgraph."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", name),
			attribute.String("server.address", c.endpoint),
		),
	)
	defer span.End()

	start := time.Now()
	err := c.do(ctx, name, query, variables, out)
	c.metrics.observeQuery(name, start)
	if err != nil {
		category := CategoryOf(err)
		if category == ErrorCancelled {
			c.logger.DebugContext(ctx, "subgraph query cancelled", "query", name, "endpoint", c.endpoint)
			return err
		}
		c.metrics.incrementError(name, category)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(category))
		c.logger.WarnContext(ctx, "subgraph query failed",
			"query", name,
			"endpoint", c.endpoint,
			"category", category,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, name, query string, variables map[string]any, out any) error {
	if !c.breaker.Allow() {
		return NewProviderError(ErrorProviderOutage, c.endpoint, "circuit open", nil)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		Post(c.endpoint)
	if err != nil {
		return c.fail(classifyTransport(c.endpoint, err))
	}

	if pe := classifyStatus(c.endpoint, resp.StatusCode(), resp.String()); pe != nil {
		return c.fail(pe)
	}

	var gr graphQLResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return c.fail(NewProviderError(ErrorBadData, c.endpoint, "decode response", err))
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return c.fail(NewProviderError(ErrorContractMismatch, c.endpoint, name+": "+strings.Join(msgs, "; "), nil))
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return c.fail(NewProviderError(ErrorBadData, c.endpoint, "response has no data", nil))
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return c.fail(NewProviderError(ErrorBadData, c.endpoint, "decode data", err))
	}

	c.succeed()
	return nil
}

// fail feeds upstream health failures to the breaker; query and decoding
// problems say nothing about availability.
func (c *Client) fail(pe *ProviderError) *ProviderError {
	if pe.Retryable {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.metrics.setBreakerOpen(c.endpoint, true)
			c.logger.Warn("subgraph circuit opened", "endpoint", c.endpoint)
		}
	}
	return pe
}

func (c *Client) succeed() {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.metrics.setBreakerOpen(c.endpoint, false)
		c.logger.Info("subgraph circuit closed", "endpoint", c.endpoint)
	}
}

func classifyTransport(endpoint string, err error) *ProviderError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewProviderError(ErrorTimeout, endpoint, "request timed out", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return NewProviderError(ErrorTimeout, endpoint, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return NewProviderError(ErrorCancelled, endpoint, "request cancelled", err)
	default:
		return NewProviderError(ErrorProviderOutage, endpoint, "request failed", err)
	}
}

func classifyStatus(endpoint string, status int, body string) *ProviderError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, endpoint, "rate limited by indexer", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, endpoint, "indexer rejected credentials", nil)
	case status == http.StatusBadRequest:
		return NewProviderError(ErrorContractMismatch, endpoint, "query rejected: "+truncate(body, 200), nil)
	case status == http.StatusGatewayTimeout:
		return NewProviderError(ErrorTimeout, endpoint, "indexer gateway timeout", nil)
	case status >= 500:
		return NewProviderError(ErrorProviderOutage, endpoint, "indexer returned "+http.StatusText(status), nil)
	default:
		return NewProviderError(ErrorInternal, endpoint, "unexpected status "+http.StatusText(status), nil)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
