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
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
	"github.com/icqmula/greenmarket-api-testing/test/api"
)

const concurrentRequests = 8

var _ = Describe("Concurrency and Performance", Ordered, func() {
	var customer greenmarket.Customer

	BeforeAll(func() {
		customer, _ = api.RegisterCustomer(api.NewAPIClientWithConfig(config), context.Background(), config)
	})

	Context("When the same customer logs in concurrently", func() {
		It("should issue a working token to every caller", func() {
			var (
				wg     sync.WaitGroup
				lock   sync.Mutex
				tokens []string
			)

			for range concurrentRequests {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					login, _, err := client.Login(ctx, customer.Credentials())
					Expect(err).NotTo(HaveOccurred())

					lock.Lock()
					defer lock.Unlock()

					tokens = append(tokens, login.Token)
				}()
			}

			wg.Wait()

			Expect(tokens).To(HaveLen(concurrentRequests))

			for _, token := range tokens {
				profile, _, err := client.WithAuthToken(token).Profile(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(profile.Email).To(Equal(customer.Email))
			}
		})
	})

	Context("When customers order concurrently", func() {
		It("should keep every order with its owner", func() {
			product := api.InStockProduct(client, ctx)

			customers := make([]*api.AuthenticatedCustomer, concurrentRequests)
			orders := make([]string, concurrentRequests)

			for i := range customers {
				customers[i] = api.NewAuthenticatedCustomer(client, ctx, config)
			}

			var wg sync.WaitGroup

			for i, c := range customers {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					orders[i] = api.PlaceOrder(ctx, c, product.ID, 1).OrderID
				}()
			}

			wg.Wait()

			for i, c := range customers {
				order, _, err := c.Client.GetOrder(ctx, orders[i])
				Expect(err).NotTo(HaveOccurred())
				Expect(order.OrderID).To(Equal(orders[i]))
			}
		})
	})

	Context("When measuring response times", func() {
		DescribeTable("should respond within the configured ceiling",
			func(method string, path func() string, body func() any) {
				response, err := client.Do(ctx, method, path(), nil, body())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.Elapsed).To(BeNumerically("<=", config.ResponseTime),
					"%s %s took %dms (trace ID %s)", method, path(), response.ElapsedMillis(), response.TraceID)
			},
			Entry("login", http.MethodPost,
				func() string { return client.Endpoints().Login() },
				func() any { return customer.Credentials() }),
			Entry("product list", http.MethodGet,
				func() string { return client.Endpoints().ListProducts() },
				func() any { return nil }),
			Entry("registration", http.MethodPost,
				func() string { return client.Endpoints().RegisterUser() },
				func() any { return config.Customer().Unique().Registration() }),
		)
	})
})
