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

var _ = Describe("Order Management", Ordered, func() {
	var (
		customer *api.AuthenticatedCustomer
		product  greenmarket.Product
		orderID  string
	)

	BeforeAll(func() {
		setup := api.NewAPIClientWithConfig(config)

		customer = api.NewAuthenticatedCustomer(setup, context.Background(), config)
		product = api.InStockProduct(setup, context.Background())
	})

	Context("When placing an order", func() {
		Describe("Given a product in stock", func() {
			It("should create a pending order", func() {
				order, response, err := customer.Client.CreateOrder(ctx, api.NewOrderPayload().WithItem(product.ID, 2).Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(order.OrderID).NotTo(BeEmpty())
				Expect(order.Total).To(BeNumerically(">", 0))
				Expect(expect.Evaluate(response,
					expect.MatchesSchema(greenmarket.SchemaCreatedOrder, greenmarket.MustSchema(greenmarket.SchemaCreatedOrder)),
				)).To(Succeed())

				orderID = order.OrderID
			})

			It("should return the order to its owner", func() {
				Expect(orderID).NotTo(BeEmpty(), "order creation failed")

				order, response, err := customer.Client.GetOrder(ctx, orderID)
				Expect(err).NotTo(HaveOccurred())
				Expect(order.OrderID).To(Equal(orderID))
				Expect(order.Status).NotTo(BeEmpty())
				Expect(order.Items).To(ContainElement(greenmarket.OrderItem{ProductID: product.ID, Quantity: 2}))
				Expect(expect.Evaluate(response,
					expect.MatchesSchema(greenmarket.SchemaOrder, greenmarket.MustSchema(greenmarket.SchemaOrder)),
				)).To(Succeed())
			})
		})

		Describe("Given an invalid order", func() {
			DescribeTable("should be rejected with 400",
				func(build func() greenmarket.CreateOrderRequest) {
					response, err := customer.Client.Do(ctx, http.MethodPost, client.Endpoints().CreateOrder(), nil, build())
					Expect(err).NotTo(HaveOccurred())
					Expect(expect.Evaluate(response,
						expect.Status(http.StatusBadRequest),
						expect.Absent("orderId"),
					)).To(Succeed())
				},
				Entry("no items", func() greenmarket.CreateOrderRequest {
					return api.NewOrderPayload().WithShippingAddress(greenmarket.PlaceholderAddress).Build()
				}),
				Entry("negative quantity", func() greenmarket.CreateOrderRequest {
					return api.NewOrderPayload().WithItem(product.ID, -1).Build()
				}),
			)
		})
	})

	Context("When reading an order that does not exist", func() {
		It("should return 404", func() {
			response, err := customer.Client.Do(ctx, http.MethodGet, client.Endpoints().GetOrder(greenmarket.UnknownID), nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response,
				expect.Status(http.StatusNotFound),
				expect.ContainsFold("error", "order not found"),
			)).To(Succeed())
		})
	})
})
