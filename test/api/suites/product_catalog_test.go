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
	"net/http"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

var _ = Describe("Product Catalog", func() {
	Context("When listing products", func() {
		Describe("Given a page size", func() {
			It("should return at most that many products", func() {
				products, response, err := client.ListProducts(ctx, url.Values{"limit": {"10"}, "page": {"1"}})
				Expect(err).NotTo(HaveOccurred())
				Expect(products).NotTo(BeEmpty())
				Expect(len(products)).To(BeNumerically("<=", 10))
				Expect(response.Elapsed).To(BeNumerically("<=", config.ResponseTime))
			})

			It("should list products matching the published schema", func() {
				_, response, err := client.ListProducts(ctx, url.Values{"limit": {"10"}})
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response,
					expect.MatchesSchema(greenmarket.SchemaProducts, greenmarket.MustSchema(greenmarket.SchemaProducts)),
					expect.Each("",
						expect.GreaterThan("price", 0),
						expect.AtLeast("stock", 0),
					),
				)).To(Succeed())
			})
		})

		Describe("Given a category filter", func() {
			It("should only return products in that category", func() {
				products, _, err := client.ListProducts(ctx, url.Values{"category": {greenmarket.OrganicCategory}, "limit": {"5"}})
				Expect(err).NotTo(HaveOccurred())
				Expect(len(products)).To(BeNumerically("<=", 5))

				for _, product := range products {
					Expect(strings.EqualFold(product.Category, greenmarket.OrganicCategory)).To(BeTrue(), "product %s is in category %q", product.ID, product.Category)
				}
			})
		})
	})

	Context("When reading a single product", func() {
		It("should return the product listed in the catalog", func() {
			products, _, err := client.ListProducts(ctx, url.Values{"limit": {"1"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(1))

			product, response, err := client.GetProduct(ctx, products[0].ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*product).To(Equal(products[0]))
			Expect(expect.Evaluate(response,
				expect.MatchesSchema(greenmarket.SchemaProduct, greenmarket.MustSchema(greenmarket.SchemaProduct)),
			)).To(Succeed())
		})

		It("should return 404 for an unknown product", func() {
			response, err := client.Do(ctx, http.MethodGet, client.Endpoints().GetProduct(greenmarket.UnknownID), nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response,
				expect.Status(http.StatusNotFound),
				expect.ContainsFold("error", "product not found"),
			)).To(Succeed())
		})

		It("should reject a malformed product ID", func() {
			response, err := client.Do(ctx, http.MethodGet, client.Endpoints().GetProduct(greenmarket.MalformedID), nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response, expect.Status(http.StatusBadRequest, http.StatusNotFound))).To(Succeed())
		})
	})
})
