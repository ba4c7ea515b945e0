package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clientorders/api-contract-tests/framework"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds every request so that an unresponsive API cannot hang the run.
	DefaultTimeout = time.Second * 10

	// RunIDHeader carries the identifier of the scenario run, so that server-side logs can be
	// matched to a transcript.
	RunIDHeader = "X-Run-Id"

	// TransportErrorPrefix starts the body of every Response that has no HTTP status.
	TransportErrorPrefix = "transport error: "
)

// Options configures an Executor.
type Options struct {
	// HTTPClient is used as-is, except that a finite Timeout is imposed if it has none. If nil,
	// a client with an OpenTelemetry-instrumented transport is created.
	HTTPClient *http.Client
	Timeout    time.Duration
	// RateLimit is the maximum number of requests per second; zero means unlimited.
	RateLimit float64
	RunID     string
	Logger    framework.Logger
}

// Executor performs the HTTP calls of the scenario, one at a time.
type Executor struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	runID      string
	logger     framework.Logger
}

// Response is the outcome of a request. A Status of zero means that no HTTP response was
// received; Body then describes the failure.
type Response struct {
	Status int
	Header http.Header
	Body   string
}

func NewExecutor(opts Options) *Executor {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var httpClient http.Client
	if opts.HTTPClient != nil {
		httpClient = *opts.HTTPClient
	} else {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	e := &Executor{
		httpClient: &httpClient,
		runID:      opts.RunID,
		logger:     logger,
	}
	if opts.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return e
}

// HTTPClient returns the underlying client, for auxiliary requests such as readiness checks.
func (e *Executor) HTTPClient() *http.Client {
	return e.httpClient
}

// EncodeBody serializes a request payload. Non-ASCII text is written verbatim rather than
// as \u escapes, and so are the characters <, > and &. A nil body encodes to nil.
func EncodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Do encodes body as JSON, if it is non-nil, and sends the request.
func (e *Executor) Do(ctx context.Context, method, url string, body interface{}) Response {
	data, err := EncodeBody(body)
	if err != nil {
		return e.failure(method, url, fmt.Errorf("cannot encode request body: %w", err))
	}
	return e.Send(ctx, method, url, data)
}

// Send performs a request with an already-encoded JSON body, or no body if data is nil.
// It never returns an error: failures are reported as a Response with Status 0.
func (e *Executor) Send(ctx context.Context, method, url string, data []byte) Response {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return e.failure(method, url, err)
		}
	}

	var reqBody io.Reader
	if data != nil {
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return e.failure(method, url, err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = int64(len(data))
	}
	if e.runID != "" {
		req.Header.Set(RunIDHeader, e.runID)
	}

	if data != nil {
		e.logger.Printf("%s %s %s", method, url, string(data))
	} else {
		e.logger.Printf("%s %s", method, url)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return e.failure(method, url, err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return e.failure(method, url, fmt.Errorf("error reading response body after HTTP %d: %w", resp.StatusCode, err))
	}
	e.logger.Printf("HTTP %d %s", resp.StatusCode, string(respData))
	return Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   string(respData),
	}
}

func (e *Executor) failure(method, url string, err error) Response {
	e.logger.Printf("%s %s failed: %s", method, url, err)
	return Response{Body: TransportErrorPrefix + err.Error()}
}

// WithLogger returns a copy of the Executor that writes debug output to logger. The copy
// shares the HTTP client and rate limiter of the original.
func (e *Executor) WithLogger(logger framework.Logger) *Executor {
	if logger == nil {
		logger = framework.NullLogger()
	}
	e1 := *e
	e1.logger = logger
	return &e1
}
