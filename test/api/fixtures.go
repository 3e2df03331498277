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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/internal/twin"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// StartTwin serves an in-process twin for the rest of the suite and points
// the configuration at it. Call it from BeforeSuite.
func StartTwin(config *TestConfig) {
	t, err := twin.New(twin.WithLogger(GinkgoLogr.WithName("twin")))
	Expect(err).NotTo(HaveOccurred())

	server := t.Start()
	config.BaseURL = server.URL

	GinkgoWriter.Printf("No API_BASE_URL set, running against an in-process twin at %s\n", server.URL)

	DeferCleanup(server.Close)
}

// AuthenticatedCustomer is a freshly registered, logged in customer.
type AuthenticatedCustomer struct {
	Customer greenmarket.Customer
	UserID   string
	Token    string
	// Client carries the customer's token.
	Client *APIClient
}

// RegisterCustomer registers a customer with a unique email.
func RegisterCustomer(client *APIClient, ctx context.Context, config *TestConfig) (greenmarket.Customer, *greenmarket.User) {
	customer := config.Customer().Unique()

	user, _, err := client.RegisterUser(ctx, customer.Registration())
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Registered customer %s with user ID %v\n", customer.Email, user.UserID)

	return customer, user
}

// NewAuthenticatedCustomer registers and logs in a unique customer.
func NewAuthenticatedCustomer(client *APIClient, ctx context.Context, config *TestConfig) *AuthenticatedCustomer {
	customer, user := RegisterCustomer(client, ctx, config)

	login, _, err := client.Login(ctx, customer.Credentials())
	Expect(err).NotTo(HaveOccurred())
	Expect(login.Token).To(MatchRegexp(greenmarket.TokenPattern))

	return &AuthenticatedCustomer{
		Customer: customer,
		UserID:   fmt.Sprint(user.UserID),
		Token:    login.Token,
		Client:   client.WithAuthToken(login.Token),
	}
}

// InStockProduct returns the first listed product that can be ordered.
func InStockProduct(client *APIClient, ctx context.Context) greenmarket.Product {
	products, _, err := client.ListProducts(ctx, url.Values{"limit": {"10"}, "page": {"1"}})
	Expect(err).NotTo(HaveOccurred())

	for _, product := range products {
		if product.Stock > 0 {
			return product
		}
	}

	Fail("no product in stock on the first page of the catalog")

	return greenmarket.Product{}
}

// PlaceOrder orders quantity of a product as the customer.
func PlaceOrder(ctx context.Context, customer *AuthenticatedCustomer, productID string, quantity int) *greenmarket.Order {
	order, _, err := customer.Client.CreateOrder(ctx, NewOrderPayload().WithItem(productID, quantity).Build())
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created order with ID: %s\n", order.OrderID)

	return order
}
