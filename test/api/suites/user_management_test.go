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

var _ = Describe("User Management", Ordered, func() {
	var (
		customer greenmarket.Customer
		user     *greenmarket.User
	)

	BeforeAll(func() {
		customer = config.Customer().Unique()
	})

	Context("When registering a new customer", func() {
		Describe("Given a complete registration", func() {
			It("should create the user", func() {
				var err error

				user, _, err = client.RegisterUser(ctx, customer.Registration())
				Expect(err).NotTo(HaveOccurred())
				Expect(user.UserID).NotTo(BeNil())
				Expect(user.Email).To(Equal(customer.Email))
				Expect(user.CreatedAt).NotTo(BeEmpty())
			})

			It("should reject a second registration with the same email", func() {
				response, err := client.Do(ctx, http.MethodPost, client.Endpoints().RegisterUser(), nil, customer.Registration())
				Expect(err).NotTo(HaveOccurred())
				Expect(expect.Evaluate(response,
					expect.Status(http.StatusConflict),
					expect.ContainsFold("error", "already registered"),
				)).To(Succeed())
			})
		})

		Describe("Given an incomplete registration", func() {
			DescribeTable("should be rejected with 400",
				func(mutate func(b *api.RegistrationPayloadBuilder)) {
					builder := api.NewRegistrationPayload(config.Customer().Unique())
					mutate(builder)

					response, err := client.Do(ctx, http.MethodPost, client.Endpoints().RegisterUser(), nil, builder.Build())
					Expect(err).NotTo(HaveOccurred())
					Expect(expect.Evaluate(response,
						expect.Status(http.StatusBadRequest),
						expect.IsString("error"),
						expect.Absent("userId"),
					)).To(Succeed())
				},
				Entry("missing email", func(b *api.RegistrationPayloadBuilder) { b.Without("email") }),
				Entry("malformed email", func(b *api.RegistrationPayloadBuilder) { b.With("email", "not-an-email") }),
				Entry("missing password", func(b *api.RegistrationPayloadBuilder) { b.Without("password") }),
				Entry("missing name", func(b *api.RegistrationPayloadBuilder) { b.Without("name") }),
			)
		})
	})

	Context("When reading the profile", func() {
		var authenticated *api.APIClient

		BeforeAll(func() {
			login, _, err := api.NewAPIClientWithConfig(config).Login(context.Background(), customer.Credentials())
			Expect(err).NotTo(HaveOccurred())

			authenticated = api.NewAPIClientWithConfig(config).WithAuthToken(login.Token)
		})

		It("should return the registered customer without the password", func() {
			profile, response, err := authenticated.Profile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Email).To(Equal(customer.Email))
			Expect(profile.Name).To(Equal(customer.Name))
			Expect(expect.Evaluate(response,
				expect.Absent("password"),
				expect.MatchesSchema(greenmarket.SchemaProfile, greenmarket.MustSchema(greenmarket.SchemaProfile)),
			)).To(Succeed())
		})

		It("should agree with the registration on the user ID", func() {
			profile, _, err := authenticated.Profile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.UserID).To(Equal(user.UserID))
		})
	})
})
