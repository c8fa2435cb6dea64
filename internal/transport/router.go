package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client dispatches worker API requests. On the hosting platform it executes
// the request through the platform's in-process channel (an http.Handler)
// without touching the network stack; everywhere else it rewrites the worker
// base URL to the local proxy path and performs a standard HTTP request.
//
// Exactly one dispatch happens per call. There are no retries here, and
// non-2xx statuses are returned to the caller uninterpreted.
type Client struct {
	Detector    *Detector
	WorkerBase  string
	ProxyBase   string
	ProxyPrefix string
	// Handler is the in-process execution channel used when hosted.
	Handler http.Handler

	HTTPClient *http.Client
}

// NewClient builds a routed client. handler may be nil when the process has
// no in-process channel; hosted requests then fall back to plain HTTP.
func NewClient(detector *Detector, workerBase, proxyBase, proxyPrefix string, handler http.Handler) *Client {
	return &Client{
		Detector:    detector,
		WorkerBase:  workerBase,
		ProxyBase:   proxyBase,
		ProxyPrefix: proxyPrefix,
		Handler:     handler,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Do routes the request per the environment. The URL and options pass
// through unchanged on the in-process path; on the proxied path only the
// worker base prefix is substituted.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.Detector.IsHosted() && c.Handler != nil {
		return c.execInProcess(req)
	}

	rewritten := req.URL.String()
	if c.WorkerBase != "" {
		rewritten = strings.Replace(rewritten, c.WorkerBase, c.ProxyBase+c.ProxyPrefix, 1)
	}

	proxied, err := http.NewRequestWithContext(req.Context(), req.Method, rewritten, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build proxied request: %w", err)
	}
	proxied.Header = req.Header.Clone()

	return c.HTTPClient.Do(proxied)
}

func (c *Client) execInProcess(req *http.Request) (*http.Response, error) {
	rec := newRecorder()
	c.Handler.ServeHTTP(rec, req)
	return rec.result(req), nil
}

// recorder captures an in-process handler invocation as an *http.Response.
type recorder struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{status: http.StatusOK, header: make(http.Header)}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(p []byte) (int, error) { return r.body.Write(p) }

func (r *recorder) result(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.status, http.StatusText(r.status)),
		StatusCode:    r.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        r.header,
		Body:          io.NopCloser(bytes.NewReader(r.body.Bytes())),
		ContentLength: int64(r.body.Len()),
		Request:       req,
	}
}
