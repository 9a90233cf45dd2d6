// Package bridge executes outlook operations as Outlook REST API requests.
package bridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
	"github.com/custodia-labs/outlook-services/internal/logger"
)

var tracer = otel.Tracer("github.com/custodia-labs/outlook-services/bridge")

// epochDate disables conditional caching of reads.
const epochDate = "Thu, 01 Jan 1970 00:00:00 GMT"

// DefaultUserAgent identifies the client to the service.
const DefaultUserAgent = "outlook-services/1"

// Options configures an HTTPBridge.
type Options struct {
	// Client is the HTTP client. Defaults to one with a traced transport.
	Client *http.Client
	// RateLimiter paces requests. Defaults to microsoft.DefaultRateLimit.
	RateLimiter *microsoft.RateLimiter
	// UserAgent is sent with every request.
	UserAgent string
}

// HTTPBridge maps named operations onto REST requests.
type HTTPBridge struct {
	client    *http.Client
	limiter   *microsoft.RateLimiter
	encoder   *schema.Encoder
	userAgent string
}

var _ driven.RemoteBridge = (*HTTPBridge)(nil)

// New creates an HTTPBridge.
func New(opts Options) *HTTPBridge {
	client := opts.Client
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	limiter := opts.RateLimiter
	if limiter == nil {
		limiter = microsoft.NewRateLimiter(microsoft.DefaultRateLimit)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPBridge{
		client:    client,
		limiter:   limiter,
		encoder:   schema.NewEncoder(),
		userAgent: userAgent,
	}
}

// Execute runs one operation. Failed responses are returned as
// *microsoft.ServiceError; network failures are returned as is.
func (b *HTTPBridge) Execute(ctx context.Context, call driven.Call) (result []byte, err error) {
	op, ok := outlook.LookupOperation(call.Operation)
	if !ok {
		return nil, fmt.Errorf("bridge: unknown operation %q", call.Operation)
	}

	ctx, span := tracer.Start(ctx, "outlook."+op.Name, trace.WithAttributes(
		attribute.String("outlook.operation", op.Name),
		attribute.String("outlook.kind", op.Kind.String()),
		attribute.String("outlook.path", call.Path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := b.newRequest(ctx, op, call)
	if err != nil {
		return nil, err
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("bridge: %s %s", req.Method, req.URL)
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bridge: read response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !microsoft.IsSuccess(resp.StatusCode) {
		if microsoft.IsRateLimited(resp.StatusCode) {
			b.limiter.Backoff(microsoft.ParseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, microsoft.ParseServiceError(resp.StatusCode, body, resp.Header, req.URL.String())
	}
	if !microsoft.HasBody(resp.StatusCode) {
		return nil, nil
	}
	return body, nil
}

func (b *HTTPBridge) newRequest(ctx context.Context, op outlook.Operation, call driven.Call) (*http.Request, error) {
	target := strings.TrimRight(call.ServiceRoot, "/") + call.Path

	var (
		method string
		body   []byte
	)
	switch op.Kind {
	case outlook.OpRead:
		method = http.MethodGet
	case outlook.OpList:
		method = http.MethodGet
		query, err := b.encodeQuery(payloadArg(call.Payload, 0))
		if err != nil {
			return nil, err
		}
		if query != "" {
			target += "?" + query
		}
	case outlook.OpCreate:
		method = http.MethodPost
		body = []byte(payloadArg(call.Payload, 0))
	case outlook.OpUpdate:
		method = http.MethodPatch
		body = []byte(payloadArg(call.Payload, 0))
	case outlook.OpDelete:
		method = http.MethodDelete
	case outlook.OpAction:
		method = http.MethodPost
		target += "/" + op.Action
		var err error
		if body, err = op.ActionRequestBody(call.Payload); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("bridge: unsupported operation kind %s", op.Kind)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("bridge: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+call.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("client-request-id", uuid.NewString())
	req.Header.Set("return-client-request-id", "true")
	if method == http.MethodGet {
		req.Header.Set("If-Modified-Since", epochDate)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// wireQuery is the OData system query of a list request.
// Nil fields are unset options and are omitted; explicit zero values
// are sent as given.
type wireQuery struct {
	Top    *int    `schema:"$top,omitempty"`
	Skip   *int    `schema:"$skip,omitempty"`
	Select *string `schema:"$select,omitempty"`
	Expand *string `schema:"$expand,omitempty"`
	Filter *string `schema:"$filter,omitempty"`
}

var queryKeys = []string{"$top", "$skip", "$select", "$expand", "$filter"}

// encodeQuery turns a list payload into a query string. Keys keep their
// literal '$' and values are escaped with %20 for spaces.
func (b *HTTPBridge) encodeQuery(payload string) (string, error) {
	opts, err := outlook.DecodeQueryPayload(payload)
	if err != nil {
		return "", fmt.Errorf("bridge: %w", err)
	}

	q := wireQuery{
		Top:    opts.Top,
		Skip:   opts.Skip,
		Select: opts.Select,
		Expand: opts.Expand,
		Filter: opts.Filter,
	}
	values := url.Values{}
	if err := b.encoder.Encode(q, values); err != nil {
		return "", fmt.Errorf("bridge: encode query: %w", err)
	}

	parts := make([]string, 0, len(queryKeys))
	for _, key := range queryKeys {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			continue
		}
		parts = append(parts, key+"="+escapeQueryValue(v[0]))
	}
	return strings.Join(parts, "&"), nil
}

func escapeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func payloadArg(payload []string, i int) string {
	if i < len(payload) {
		return payload[i]
	}
	return ""
}
