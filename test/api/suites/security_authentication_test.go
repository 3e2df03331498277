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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
	"github.com/icqmula/greenmarket-api-testing/test/api"
)

var _ = Describe("Security and Authentication", Ordered, func() {
	var customer greenmarket.Customer

	BeforeAll(func() {
		customer, _ = api.RegisterCustomer(api.NewAPIClientWithConfig(config), context.Background(), config)
	})

	Context("When logging in", func() {
		Describe("Given valid credentials", func() {
			It("should issue a bearer token", func() {
				login, response, err := client.Login(ctx, customer.Credentials())
				Expect(err).NotTo(HaveOccurred())
				Expect(login.Token).To(MatchRegexp(greenmarket.TokenPattern))
				Expect(login.ExpiresIn).To(BeNumerically(">", 0))
				Expect(expect.Evaluate(response,
					expect.ContentType("application/json"),
					expect.MatchesSchema(greenmarket.SchemaLoginResponse, greenmarket.MustSchema(greenmarket.SchemaLoginResponse)),
				)).To(Succeed())
			})
		})

		Describe("Given invalid credentials", func() {
			DescribeTable("should be rejected without a token",
				func(request func() greenmarket.LoginRequest) {
					response, err := client.Do(ctx, http.MethodPost, client.Endpoints().Login(), nil, request())
					Expect(err).NotTo(HaveOccurred())
					Expect(expect.Evaluate(response,
						expect.Status(http.StatusUnauthorized),
						expect.ContainsFold("error", "invalid credentials"),
						expect.Absent("token"),
					)).To(Succeed())
				},
				Entry("wrong password", func() greenmarket.LoginRequest {
					return greenmarket.LoginRequest{Email: customer.Email, Password: greenmarket.WrongPassword}
				}),
				Entry("unregistered email", func() greenmarket.LoginRequest {
					return config.Customer().Unique().Credentials()
				}),
			)
		})
	})

	Context("When calling a protected endpoint", func() {
		Describe("Given no usable token", func() {
			It("should reject requests with missing authentication", func() {
				response, err := client.Do(ctx, http.MethodGet, client.Endpoints().Profile(), nil, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response,
					expect.Status(http.StatusUnauthorized),
					expect.ContainsFold("error", "authentication required"),
				)).To(Succeed())
			})

			It("should reject a malformed token", func() {
				response, err := client.WithAuthToken(greenmarket.MalformedToken).Do(ctx, http.MethodGet, client.Endpoints().Profile(), nil, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response, expect.Status(http.StatusUnauthorized))).To(Succeed())
			})

			It("should reject order creation without a token", func() {
				response, err := client.Do(ctx, http.MethodPost, client.Endpoints().CreateOrder(), nil,
					api.NewOrderPayload().WithItem("1", 1).Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response, expect.Status(http.StatusUnauthorized))).To(Succeed())
			})
		})
	})

	Context("When accessing another customer's order", func() {
		It("should not disclose it", func() {
			owner := api.NewAuthenticatedCustomer(client, ctx, config)
			other := api.NewAuthenticatedCustomer(client, ctx, config)
			product := api.InStockProduct(client, ctx)

			order := api.PlaceOrder(ctx, owner, product.ID, 1)

			response, err := other.Client.Do(ctx, http.MethodGet, client.Endpoints().GetOrder(order.OrderID), nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response,
				expect.Status(http.StatusForbidden, http.StatusNotFound),
				expect.Absent("total"),
			)).To(Succeed())
		})
	})
})
