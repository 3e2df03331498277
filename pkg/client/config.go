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

package client

import (
	"maps"
	"strings"
)

const (
	// MediaTypeJSON is the only media type the GreenMarket API speaks.
	MediaTypeJSON = "application/json"
)

// RequestConfig is the shared base configuration every request is built from.
// It is a value type; WithHeader and friends return a derived copy and never
// modify the receiver, so a config handed to one case cannot leak headers into
// another.
type RequestConfig struct {
	baseURL     string
	contentType string
	accept      string
	headers     map[string]string
}

// NewRequestConfig returns a JSON request configuration rooted at baseURL.
func NewRequestConfig(baseURL string) RequestConfig {
	return RequestConfig{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		contentType: MediaTypeJSON,
		accept:      MediaTypeJSON,
	}
}

// BaseURL returns the API root without a trailing slash.
func (c RequestConfig) BaseURL() string {
	return c.baseURL
}

// ContentType returns the content type used for request bodies.
func (c RequestConfig) ContentType() string {
	return c.contentType
}

// Accept returns the media type requested from the server.
func (c RequestConfig) Accept() string {
	return c.accept
}

// Headers returns a copy of the extra headers.
func (c RequestConfig) Headers() map[string]string {
	return maps.Clone(c.headers)
}

// Header returns a single extra header.
func (c RequestConfig) Header(name string) (string, bool) {
	value, ok := c.headers[name]

	return value, ok
}

// WithHeader derives a configuration with the header added or replaced.
func (c RequestConfig) WithHeader(name, value string) RequestConfig {
	headers := make(map[string]string, len(c.headers)+1)
	maps.Copy(headers, c.headers)
	headers[name] = value

	c.headers = headers

	return c
}

// WithBearerToken derives a configuration carrying an Authorization header.
func (c RequestConfig) WithBearerToken(token string) RequestConfig {
	return c.WithHeader("Authorization", "Bearer "+token)
}
