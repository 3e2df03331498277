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

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/onsi/ginkgo/v2"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// APIClient is a typed GreenMarket client for the suites. Typed calls fail on
// an unexpected status; Do returns whatever the server sent so negative cases
// can make their own assertions.
type APIClient struct {
	client    *client.Client
	config    client.RequestConfig
	endpoints *greenmarket.Endpoints
}

// NewAPIClientWithConfig returns an unauthenticated client for the
// configured target, logging to the ginkgo writer.
func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return &APIClient{
		client:    config.Client(ginkgo.GinkgoLogr),
		config:    config.RequestConfig(),
		endpoints: greenmarket.NewEndpoints(),
	}
}

// SetAuthToken makes every subsequent call carry the token.
func (c *APIClient) SetAuthToken(token string) {
	c.config = c.config.WithBearerToken(token)
}

// WithAuthToken returns a copy carrying the token, leaving c untouched.
func (c *APIClient) WithAuthToken(token string) *APIClient {
	copied := *c
	copied.config = c.config.WithBearerToken(token)

	return &copied
}

// Endpoints exposes the path builders for raw requests.
func (c *APIClient) Endpoints() *greenmarket.Endpoints {
	return c.endpoints
}

// Do sends a raw request.
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values, body any) (*client.Response, error) {
	response, err := c.client.Send(ctx, c.config, client.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// call sends a request, checks the status and decodes the body into T.
func call[T any](ctx context.Context, c *APIClient, method, path string, query url.Values, body any, status int) (*T, *client.Response, error) {
	response, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if err := expect.Evaluate(response, expect.Status(status)); err != nil {
		ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s trace=%s\n", method, path, status, response.StatusCode, string(response.Raw), response.TraceID)

		return nil, response, fmt.Errorf("%s %s (trace ID: %s): %w", method, path, response.TraceID, err)
	}

	var out T

	if err := json.Unmarshal(response.Raw, &out); err != nil {
		return nil, response, fmt.Errorf("unmarshaling %s %s response: %w", method, path, err)
	}

	return &out, response, nil
}

// RegisterUser registers a customer, expecting 201.
func (c *APIClient) RegisterUser(ctx context.Context, request greenmarket.RegisterUserRequest) (*greenmarket.User, *client.Response, error) {
	return call[greenmarket.User](ctx, c, http.MethodPost, c.endpoints.RegisterUser(), nil, request, http.StatusCreated)
}

// Login logs in, expecting 200.
func (c *APIClient) Login(ctx context.Context, request greenmarket.LoginRequest) (*greenmarket.LoginResponse, *client.Response, error) {
	return call[greenmarket.LoginResponse](ctx, c, http.MethodPost, c.endpoints.Login(), nil, request, http.StatusOK)
}

// Profile reads the authenticated customer's profile, expecting 200.
func (c *APIClient) Profile(ctx context.Context) (*greenmarket.User, *client.Response, error) {
	return call[greenmarket.User](ctx, c, http.MethodGet, c.endpoints.Profile(), nil, nil, http.StatusOK)
}

// ListProducts lists products, expecting 200. query may carry category,
// limit and page.
func (c *APIClient) ListProducts(ctx context.Context, query url.Values) ([]greenmarket.Product, *client.Response, error) {
	products, response, err := call[[]greenmarket.Product](ctx, c, http.MethodGet, c.endpoints.ListProducts(), query, nil, http.StatusOK)
	if err != nil {
		return nil, response, err
	}

	return *products, response, nil
}

// GetProduct reads a single product, expecting 200.
func (c *APIClient) GetProduct(ctx context.Context, productID string) (*greenmarket.Product, *client.Response, error) {
	return call[greenmarket.Product](ctx, c, http.MethodGet, c.endpoints.GetProduct(productID), nil, nil, http.StatusOK)
}

// CreateOrder places an order, expecting 201.
func (c *APIClient) CreateOrder(ctx context.Context, request greenmarket.CreateOrderRequest) (*greenmarket.Order, *client.Response, error) {
	return call[greenmarket.Order](ctx, c, http.MethodPost, c.endpoints.CreateOrder(), nil, request, http.StatusCreated)
}

// GetOrder reads one of the customer's orders, expecting 200.
func (c *APIClient) GetOrder(ctx context.Context, orderID string) (*greenmarket.Order, *client.Response, error) {
	return call[greenmarket.Order](ctx, c, http.MethodGet, c.endpoints.GetOrder(orderID), nil, nil, http.StatusOK)
}
