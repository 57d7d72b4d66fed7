package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gql "github.com/hasura/go-graphql-client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Runner is the part of Client the modules depend on.
type Runner interface {
	Request(ctx context.Context, query string, variables map[string]any, headers http.Header, out any) error
}

// Client talks to the one travel GraphQL endpoint. A single attempt is made per call;
// failures are returned to the caller as *Error.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer

	mu    sync.RWMutex
	token string
	gql   *gql.Client
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
}

// WithHTTPClient sets the client whose transport carries the requests. It is copied,
// never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout caps each request, whichever client is in use.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func New(endpoint string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	// statusRecorder must wrap whatever transport the caller configured.
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &statusRecorder{next: base}

	c := &Client{
		endpoint:   endpoint,
		httpClient: hc,
		tracer:     otel.Tracer("traveladdicts/graphql"),
	}
	c.gql = c.build("")
	return c
}

func (c *Client) build(token string) *gql.Client {
	client := gql.NewClient(c.endpoint, c.httpClient)
	if token == "" {
		return client
	}
	return client.WithRequestModifier(func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
}

// SetAuthToken rebuilds the underlying client so every later call carries the token.
// An empty token is the same as ClearAuthToken.
func (c *Client) SetAuthToken(token string) {
	token = strings.TrimSpace(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.gql = c.build(token)
}

func (c *Client) ClearAuthToken() {
	c.SetAuthToken("")
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// WithToken returns a client sharing the transport but carrying its own token, for
// serving one admin request without touching the shared client.
func (c *Client) WithToken(token string) *Client {
	clone := &Client{
		endpoint:   c.endpoint,
		httpClient: c.httpClient,
		tracer:     c.tracer,
	}
	clone.SetAuthToken(token)
	return clone
}

// Request sends one operation and decodes its data into out (which may be nil).
func (c *Client) Request(ctx context.Context, query string, variables map[string]any, headers http.Header, out any) error {
	op := operationName(query)

	ctx, span := c.tracer.Start(ctx, "graphql."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("graphql.operation", op),
		attribute.Int("graphql.variables", len(variables)),
	)

	c.mu.RLock()
	client := c.gql
	c.mu.RUnlock()

	if tok := TokenFromContext(ctx); tok != "" {
		h := headers.Clone()
		if h == nil {
			h = http.Header{}
		}
		h.Set("Authorization", "Bearer "+tok)
		headers = h
	}

	rec := &callState{headers: headers}
	ctx = context.WithValue(ctx, callStateKey{}, rec)

	start := time.Now()
	raw, err := client.ExecRaw(ctx, query, variables)
	if err == nil && out != nil && len(raw) > 0 {
		if decodeErr := json.Unmarshal(raw, out); decodeErr != nil {
			err = fmt.Errorf("decode %s response: %w", op, decodeErr)
		}
	}

	if err != nil {
		gerr := classify(op, rec.status, err)
		observe(op, string(gerr.Kind), time.Since(start))
		span.RecordError(gerr)
		span.SetStatus(codes.Error, string(gerr.Kind))
		return gerr
	}

	observe(op, "ok", time.Since(start))
	return nil
}

type callStateKey struct{}

type tokenKey struct{}

// ContextWithToken makes calls made with ctx carry token as their bearer, in place of
// the client's own token. Admin handlers use it to act as the signed-in user.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

type callState struct {
	headers http.Header
	status  int
}

// statusRecorder keeps the HTTP status of each call (the GraphQL library folds it into
// an error string) and applies per-call headers.
type statusRecorder struct {
	next http.RoundTripper
}

func (s *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	st, _ := req.Context().Value(callStateKey{}).(*callState)
	if st != nil && len(st.headers) > 0 {
		req = req.Clone(req.Context())
		for k, vals := range st.headers {
			req.Header.Del(k)
			for _, v := range vals {
				req.Header.Add(k, v)
			}
		}
	}

	resp, err := s.next.RoundTrip(req)
	if st != nil && resp != nil {
		st.status = resp.StatusCode
	}
	return resp, err
}

func operationName(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == '(' || r == '{' || r == '\r'
	})
	for i, f := range fields {
		if (f == "query" || f == "mutation") && i+1 < len(fields) {
			return fields[i+1]
		}
		if f != "" {
			break
		}
	}
	return "anonymous"
}
