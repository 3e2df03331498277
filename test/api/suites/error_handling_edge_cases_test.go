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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
	"github.com/icqmula/greenmarket-api-testing/test/api"
)

// errorBody is what every GreenMarket error response looks like.
func errorBody() []expect.Check {
	return []expect.Check{
		expect.ContentType("application/json"),
		expect.MatchesSchema(greenmarket.SchemaError, greenmarket.MustSchema(greenmarket.SchemaError)),
	}
}

var _ = Describe("Error Handling and Edge Cases", func() {
	Context("When a request body has the wrong shape", func() {
		It("should reject a quantity that is not a number", func() {
			customer := api.NewAuthenticatedCustomer(client, ctx, config)

			body := map[string]any{
				"items":           []map[string]any{{"productId": "1", "quantity": "two"}},
				"shippingAddress": greenmarket.ShippingAddress,
			}

			response, err := customer.Client.Do(ctx, http.MethodPost, client.Endpoints().CreateOrder(), nil, body)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response, append([]expect.Check{expect.Status(http.StatusBadRequest)}, errorBody()...)...)).To(Succeed())
		})

		It("should reject a registration with a non-string email", func() {
			body := api.NewRegistrationPayload(config.Customer().Unique()).With("email", 42).Build()

			response, err := client.Do(ctx, http.MethodPost, client.Endpoints().RegisterUser(), nil, body)
			Expect(err).NotTo(HaveOccurred())
			Expect(expect.Evaluate(response, append([]expect.Check{expect.Status(http.StatusBadRequest)}, errorBody()...)...)).To(Succeed())
		})
	})

	Context("When an error is returned", func() {
		DescribeTable("should describe it in a JSON error body",
			func(method string, path func() string, status int) {
				response, err := client.Do(ctx, method, path(), nil, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response, append([]expect.Check{expect.Status(status)}, errorBody()...)...)).To(Succeed())
			},
			Entry("unknown product", http.MethodGet, func() string { return client.Endpoints().GetProduct(greenmarket.UnknownID) }, http.StatusNotFound),
			Entry("missing token", http.MethodGet, func() string { return client.Endpoints().Profile() }, http.StatusUnauthorized),
			Entry("login without a body", http.MethodPost, func() string { return client.Endpoints().Login() }, http.StatusBadRequest),
		)
	})

	Context("When the same request is repeated", func() {
		It("should give the same answer", func() {
			first, err := client.Do(ctx, http.MethodGet, client.Endpoints().GetProduct(greenmarket.UnknownID), nil, nil)
			Expect(err).NotTo(HaveOccurred())

			second, err := client.Do(ctx, http.MethodGet, client.Endpoints().GetProduct(greenmarket.UnknownID), nil, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.StatusCode).To(Equal(first.StatusCode))
			Expect(second.TraceID).NotTo(Equal(first.TraceID))
		})
	})
})
