/*
Copyright 2026 the GreenMarket Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is a thin HTTP/JSON client for black box API testing.
//
// It deliberately exposes everything a test wants to look at (status code,
// content type, headers, the raw and parsed body and the round trip time)
// rather than turning non-2xx responses into errors. The only error a
// successful round trip can produce is a TransportError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/go-logr/logr"
)

// Request describes a single call relative to a RequestConfig.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the configuration's base URL.
	Path string
	// Query is encoded into the query string.
	Query url.Values
	// Headers are laid over the configuration headers, winning on conflict.
	Headers map[string]string
	// Body, if not nil, is encoded as JSON.
	Body any
}

// Response is what came back from the server.
type Response struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// ContentType is the media type without parameters, e.g. "application/json".
	ContentType string
	// Header is the full response header set.
	Header http.Header
	// Raw is the unparsed response body.
	Raw []byte
	// Body is the parsed JSON body, nil when the body was empty or not JSON.
	Body *gabs.Container
	// BodyErr records why a JSON body could not be parsed.
	BodyErr error
	// Elapsed is the time from sending the request to reading the whole body.
	Elapsed time.Duration
	// TraceID is the W3C trace ID sent with the request.
	TraceID string
}

// ElapsedMillis returns the round trip time in whole milliseconds.
func (r *Response) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// Client issues requests built from a RequestConfig.
type Client struct {
	client       *http.Client
	logger       logr.Logger
	logRequests  bool
	logResponses bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.client = c
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.client.Timeout = timeout
	}
}

// WithLogger sets where request and error traces go.
func WithLogger(logger logr.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithRequestLogging logs every request line with status and duration.
func WithRequestLogging(enabled bool) Option {
	return func(client *Client) {
		client.logRequests = enabled
	}
}

// WithResponseLogging logs every response body.
func WithResponseLogging(enabled bool) Option {
	return func(client *Client) {
		client.logResponses = enabled
	}
}

// New returns a client with a 30 second timeout unless overridden.
func New(options ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logr.Discard(),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

// Send performs the request and reads the whole response.
func (c *Client) Send(ctx context.Context, config RequestConfig, request Request) (*Response, error) {
	fullURL := config.BaseURL() + request.Path

	if len(request.Query) > 0 {
		fullURL += "?" + request.Query.Encode()
	}

	var body io.Reader

	if request.Body != nil {
		data, err := json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=greenmarket")
	req.Header.Set("Accept", config.Accept())

	if body != nil {
		req.Header.Set("Content-Type", config.ContentType())
	}

	for name, value := range config.Headers() {
		req.Header.Set(name, value)
	}

	for name, value := range request.Headers {
		req.Header.Set(name, value)
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error(err, "http request failed", "method", request.Method, "path", request.Path, "duration", time.Since(start), "traceparent", traceParent)

		return nil, &TransportError{Method: request.Method, URL: fullURL, TraceID: traceID, Err: err}
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "reading response body", "method", request.Method, "path", request.Path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)

		return nil, &TransportError{Method: request.Method, URL: fullURL, TraceID: traceID, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.logRequests {
		c.logger.Info("request", "method", request.Method, "path", request.Path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.logResponses && len(raw) > 0 {
		c.logger.Info("response body", "method", request.Method, "path", request.Path, "body", string(raw))
	}

	response := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: mediaType(resp.Header.Get("Content-Type")),
		Header:      resp.Header,
		Raw:         raw,
		Elapsed:     duration,
		TraceID:     traceID,
	}

	if len(bytes.TrimSpace(raw)) > 0 && strings.HasSuffix(response.ContentType, "json") {
		response.Body, response.BodyErr = gabs.ParseJSON(raw)
	}

	return response, nil
}

// mediaType strips parameters such as charset from a Content-Type value.
func mediaType(value string) string {
	if value == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.TrimSpace(strings.ToLower(strings.SplitN(value, ";", 2)[0]))
	}

	return mt
}
