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
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
	"github.com/icqmula/greenmarket-api-testing/test/api"
)

var _ = Describe("Boundary Value Testing", Ordered, func() {
	var (
		customer *api.AuthenticatedCustomer
		product  greenmarket.Product
	)

	BeforeAll(func() {
		setup := api.NewAPIClientWithConfig(config)

		customer = api.NewAuthenticatedCustomer(setup, context.Background(), config)
		product = api.InStockProduct(setup, context.Background())
	})

	Context("When paging the catalog", func() {
		It("should honour the smallest page size", func() {
			products, _, err := client.ListProducts(ctx, url.Values{"limit": {"1"}, "page": {"1"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(1))
		})

		It("should return an empty list past the last page", func() {
			products, response, err := client.ListProducts(ctx, url.Values{"limit": {"100"}, "page": {"100000"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(BeEmpty())
			Expect(expect.Evaluate(response, expect.IsList(""))).To(Succeed())
		})

		It("should not return the same product on consecutive pages", func() {
			first, _, err := client.ListProducts(ctx, url.Values{"limit": {"1"}, "page": {"1"}})
			Expect(err).NotTo(HaveOccurred())

			second, _, err := client.ListProducts(ctx, url.Values{"limit": {"1"}, "page": {"2"}})
			Expect(err).NotTo(HaveOccurred())

			if len(second) > 0 {
				Expect(second[0].ID).NotTo(Equal(first[0].ID))
			}
		})
	})

	Context("When choosing an order quantity", func() {
		It("should accept the minimum quantity of one", func() {
			order := api.PlaceOrder(ctx, customer, product.ID, 1)
			Expect(order.Total).To(BeNumerically("~", product.Price, 0.01))
		})

		DescribeTable("should reject quantities below one",
			func(quantity int) {
				response, err := customer.Client.Do(ctx, http.MethodPost, client.Endpoints().CreateOrder(), nil,
					api.NewOrderPayload().WithItem(product.ID, quantity).Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response, expect.Status(http.StatusBadRequest))).To(Succeed())
			},
			Entry("zero", 0),
			Entry("minus one", -1),
		)

		It("should price a multi-line order as the sum of its lines", func() {
			order, _, err := customer.Client.CreateOrder(ctx, api.NewOrderPayload().
				WithItem(product.ID, 2).
				WithItem(product.ID, 3).
				Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Total).To(BeNumerically("~", 5*product.Price, 0.01))
		})
	})
})
