package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// General purpose client for Discourse HTTP API endpoints.
type APIClient struct {
	// Inner HTTP client. May be customized after the overall [APIClient] struct is created; for example to set a default request timeout.
	Client *http.Client

	// Forum base URL: scheme, hostname, port, and (optional) sub-folder path prefix. This field is required.
	Host string

	// Optional auth "middleware". A nil value means requests are sent anonymously.
	Auth AuthMethod

	// Optional HTTP headers which will be included in all requests. Only a single value per key is included; request-level headers will override any client-level defaults.
	Headers http.Header

	// Optional logger. Defaults to [slog.Default].
	Logger *slog.Logger
}

// Creates a simple APIClient for the provided forum base URL, without authentication.
//
// Uses [DefaultHTTPClient], and sets default User-Agent and Accept headers.
func NewAPIClient(host string) *APIClient {
	return &APIClient{
		Client: DefaultHTTPClient(),
		Host:   host,
		Headers: map[string][]string{
			"User-Agent": []string{UserAgent()},
			"Accept":     []string{"application/json"},
		},
	}
}

func UserAgent() string {
	return "discourse-go/" + versioninfo.Short()
}

// Returns a new [http.Client] with an OpenTelemetry-instrumented transport. The client has no retry logic and no overall timeout; use request contexts to bound calls.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(
			cleanhttp.DefaultPooledTransport(),
			otelhttp.WithSpanNameFormatter(spanName),
		),
	}
}

type endpointKey struct{}

func spanName(operation string, r *http.Request) string {
	if endpoint, ok := r.Context().Value(endpointKey{}).(string); ok && endpoint != "" {
		return "discourse." + endpoint
	}
	return "HTTP " + r.Method
}

func (c *APIClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Helper for JSON GET endpoints. `params` is anything accepted by [ParseParams].
//
// Non-successful responses are returned as [*APIError]. If `out` is nil the response body is discarded.
func (c *APIClient) Get(ctx context.Context, endpoint, path string, params any, out any) error {
	return c.Call(ctx, http.MethodGet, endpoint, path, params, nil, out)
}

// Helper for JSON-to-JSON POST endpoints.
func (c *APIClient) Post(ctx context.Context, endpoint, path string, body any, out any) error {
	return c.Call(ctx, http.MethodPost, endpoint, path, nil, body, out)
}

// Helper for JSON-to-JSON PUT endpoints.
func (c *APIClient) Put(ctx context.Context, endpoint, path string, body any, out any) error {
	return c.Call(ctx, http.MethodPut, endpoint, path, nil, body, out)
}

// Helper for DELETE endpoints, which may take query params but no body.
func (c *APIClient) Delete(ctx context.Context, endpoint, path string, params any, out any) error {
	return c.Call(ctx, http.MethodDelete, endpoint, path, params, nil, out)
}

// Performs a single JSON API round trip and classifies the response.
//
// A non-nil `body` is sent as JSON, unless it is already an [io.Reader]. Successful responses are decoded in to `out` (when non-nil); a body which does not parse is reported wrapping [ErrMalformedResponse]. Non-successful responses become an [*APIError]: structured when the body is a Discourse error payload, otherwise carrying only the status code.
func (c *APIClient) Call(ctx context.Context, method, endpoint, path string, params any, body any, out any) (err error) {
	ctx, span := otel.Tracer("discourse").Start(ctx, "APIClient.Call")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("endpoint", endpoint), attribute.String("method", method))

	var reqBody io.Reader
	var contentType string
	if body != nil {
		if rr, ok := body.(io.Reader); ok {
			reqBody = rr
		} else {
			b, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("encoding %s request body: %w", endpoint, err)
			}
			reqBody = bytes.NewReader(b)
			contentType = "application/json"
		}
	}

	req := NewAPIRequest(method, endpoint, path, reqBody)
	if contentType != "" {
		req.Headers.Set("Content-Type", contentType)
	}

	qp, err := ParseParams(params)
	if err != nil {
		return err
	}
	req.QueryParams = qp

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return handleResponse(resp, endpoint, out)
}

func handleResponse(resp *http.Response, endpoint string, out any) error {
	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		var eb ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || len(eb.Errors) == 0 {
			apiRequestErrors.WithLabelValues(endpoint, errKindHTTP).Inc()
			return &APIError{StatusCode: resp.StatusCode}
		}
		apiRequestErrors.WithLabelValues(endpoint, errKindAPI).Inc()
		return eb.APIError(resp.StatusCode)
	}

	if out == nil {
		// drain body before returning
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := decodeResult(resp.Body, out); err != nil {
		apiRequestErrors.WithLabelValues(endpoint, errKindDecode).Inc()
		return fmt.Errorf("%w: decoding %s response: %w", ErrMalformedResponse, endpoint, err)
	}
	return nil
}

var jsonNull = []byte("null")

// Decodes a whole response body in to `out`. Trailing data after the JSON value is an error, and so is a bare null.
func decodeResult(body io.Reader, out any) error {
	var raw json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value")
	}
	if bytes.Equal(raw, jsonNull) {
		return fmt.Errorf("null response body")
	}
	return json.Unmarshal(raw, out)
}

// Full-featured method for API requests. Attaches auth headers and sends the request, but does not interpret the response status or body; the caller must close the response body.
//
// Transport failures are returned wrapping both [ErrTransport] and the underlying error (so [context.Canceled] and friends still match with [errors.Is]).
func (c *APIClient) Do(ctx context.Context, req *APIRequest) (*http.Response, error) {
	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	httpReq, err := req.HTTPRequest(context.WithValue(ctx, endpointKey{}, req.Endpoint), c.Host, c.Headers)
	if err != nil {
		return nil, err
	}

	// credentials are only ever attached by the configured auth mode
	for _, name := range authHeaders {
		httpReq.Header.Del(name)
	}
	if c.Auth != nil {
		c.Auth.AuthorizeRequest(httpReq)
	}

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	elapsed := time.Since(start)
	apiRequestDuration.WithLabelValues(req.Endpoint, req.Method).Observe(elapsed.Seconds())
	if err != nil {
		apiRequestErrors.WithLabelValues(req.Endpoint, errKindTransport).Inc()
		c.logger().Warn("discourse API request failed", "endpoint", req.Endpoint, "method", req.Method, "path", req.Path, "duration", elapsed, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	apiRequestsTotal.WithLabelValues(req.Endpoint, req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger().Debug("discourse API request", "endpoint", req.Endpoint, "method", req.Method, "path", req.Path, "status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}

// Returns a shallow copy of the APIClient with an additional client-level header. Auth is shared with the original.
//
// Credential headers (see [IsAuthHeader]) are ignored here; credentials only come from Auth.
func (c *APIClient) WithHeader(key, value string) *APIClient {
	out := c.clone()
	if IsAuthHeader(key) {
		out.logger().Warn("ignoring credential header set outside of auth", "header", http.CanonicalHeaderKey(key))
		return out
	}
	out.Headers.Set(key, value)
	return out
}

// Returns a shallow copy of the APIClient using the provided [http.Client].
func (c *APIClient) WithHTTPClient(httpClient *http.Client) *APIClient {
	out := c.clone()
	out.Client = httpClient
	return out
}

// Returns a shallow copy of the APIClient using the provided logger.
func (c *APIClient) WithLogger(logger *slog.Logger) *APIClient {
	out := c.clone()
	out.Logger = logger
	return out
}

func (c *APIClient) clone() *APIClient {
	hdr := c.Headers.Clone()
	if hdr == nil {
		hdr = http.Header{}
	}
	out := APIClient{
		Client:  c.Client,
		Host:    c.Host,
		Auth:    c.Auth,
		Headers: hdr,
		Logger:  c.Logger,
	}
	return &out
}
