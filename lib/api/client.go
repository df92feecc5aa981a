package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"minecomply/lib/constants"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "minecomply/lib/api"

// TokenProvider hands out the current bearer token of the signed-in user.
// Implementations refresh as needed; callers ask again for every request.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to TokenProvider
type TokenProviderFunc func(ctx context.Context) (string, error)

func (f TokenProviderFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Client is the JSON client for the compliance API. Every request carries
// the bearer token and a JSON content type; non-2xx responses become *APIError.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenProvider
	Logger  *logrus.Logger
}

// NewClient creates a Client rooted at baseURL (without the /api prefix)
func NewClient(baseURL string, httpClient *http.Client, tokens TokenProvider, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    httpClient,
		Tokens:  tokens,
		Logger:  logger,
	}
}

// Get issues GET /api{path} and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST /api{path} with body encoded as JSON and decodes the response into out.
// A nil body sends no request body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// BearerToken fetches a fresh token from the provider, failing with
// *AuthenticationError when none is available.
func (c *Client) BearerToken(ctx context.Context) (string, error) {
	if c.Tokens == nil {
		return "", &AuthenticationError{}
	}
	token, err := c.Tokens.AccessToken(ctx)
	if err != nil {
		if IsAuthentication(err) {
			return "", err
		}
		return "", &AuthenticationError{Reason: err.Error()}
	}
	if token == "" {
		return "", &AuthenticationError{}
	}
	return token, nil
}

// StartSpan opens a client span and is shared with the upload pipeline
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// InjectTraceHeaders writes the W3C trace context of ctx into header
func InjectTraceHeaders(ctx context.Context, header http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	token, err := c.BearerToken(ctx)
	if err != nil {
		return err
	}

	ctx, span := StartSpan(ctx, method+" "+path,
		attribute.String("http.request.method", method),
		attribute.String("url.path", constants.API_PATH_PREFIX+path),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.BaseURL + constants.API_PATH_PREFIX + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", constants.CONTENT_TYPE_JSON)
	InjectTraceHeaders(ctx, req.Header)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.Logger.WithFields(logrus.Fields{
			"method":    method,
			"path":      path,
			"operation": "do",
			"error":     err.Error(),
		}).Error("Request failed before a response was received")
		return &NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	c.Logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"operation":   "do",
	}).Debug("Compliance API request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    ParseErrorEnvelope(respBody),
		}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}
	if readErr != nil {
		span.RecordError(readErr)
		return &NetworkError{Method: method, URL: url, Err: readErr}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
