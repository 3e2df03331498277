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
	"os"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
	"github.com/icqmula/greenmarket-api-testing/pkg/report"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// newRunner returns a runner against the configured target, logging to the
// ginkgo writer.
func newRunner(options ...scenario.Option) *scenario.Runner {
	options = append([]scenario.Option{scenario.WithLogger(GinkgoLogr)}, options...)

	return scenario.NewRunner(config.Client(GinkgoLogr), config.RequestConfig(), options...)
}

// expectOK fails the test with the rendered report if anything did not pass.
func expectOK(result *scenario.Report) {
	if !result.OK() {
		Fail(report.New(GinkgoWriter).Render(result))
	}
}

var _ = Describe("State Management", func() {
	Context("When running the full case catalog", func() {
		DescribeTable("should thread the session through every module",
			func(parallel bool) {
				catalog := greenmarket.NewCatalog(config.Customer().Unique())
				catalog.ResponseTime = config.ResponseTime

				runner := newRunner(scenario.WithParallel(parallel))

				result, err := runner.Run(ctx, catalog.Plan())
				Expect(err).NotTo(HaveOccurred())
				expectOK(result)

				token, ok := runner.Session().Token()
				Expect(ok).To(BeTrue())
				Expect(token).To(MatchRegexp(greenmarket.TokenPattern))

				_, ok = runner.Session().UserID()
				Expect(ok).To(BeTrue())

				Expect(runner.Artifacts(greenmarket.ModuleOrders)).To(HaveKey(greenmarket.ArtifactOrderID))
				Expect(runner.Artifacts(greenmarket.ModuleUsers)).NotTo(HaveKey(greenmarket.ArtifactOrderID))
			},
			Entry("sequentially", false),
			Entry("with independent modules in parallel", true),
		)
	})

	Context("When the customer cannot log in", func() {
		It("should block everything that needs the token rather than fail it", func() {
			customer := config.Customer().Unique()
			catalog := greenmarket.NewCatalog(customer)
			catalog.ResponseTime = config.ResponseTime

			plan := catalog.Plan()

			// Without either registration case nobody can log in.
			users, ok := plan.Module(greenmarket.ModuleUsers)
			Expect(ok).To(BeTrue())

			users.Cases = slices.DeleteFunc(users.Cases, func(c scenario.Case) bool {
				return c.ID == "CP-001" || c.ID == "CP-002"
			})

			result, err := newRunner().Run(ctx, plan)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.OK()).To(BeFalse())

			profile, ok := result.Case("CP-005")
			Expect(ok).To(BeTrue())
			Expect(profile.State).To(Equal(scenario.Blocked))

			order, ok := result.Case("CP-010")
			Expect(ok).To(BeTrue())
			Expect(order.State).To(Equal(scenario.Blocked))

			products, ok := result.Module(greenmarket.ModuleProducts)
			Expect(ok).To(BeTrue())
			Expect(products.OK()).To(BeTrue())
		})
	})

	Context("When running a plan file", func() {
		It("should capture and reuse values across cases and modules", func() {
			customer := config.Customer().Unique()

			Expect(os.Setenv("GREENMARKET_PLAN_EMAIL", customer.Email)).To(Succeed())
			Expect(os.Setenv("GREENMARKET_PLAN_PASSWORD", customer.Password)).To(Succeed())

			DeferCleanup(func() {
				_ = os.Unsetenv("GREENMARKET_PLAN_EMAIL")
				_ = os.Unsetenv("GREENMARKET_PLAN_PASSWORD")
			})

			plan, err := scenario.LoadPlan("testdata/customer_journey.yaml")
			Expect(err).NotTo(HaveOccurred())

			runner := newRunner()

			result, err := runner.Run(ctx, plan)
			Expect(err).NotTo(HaveOccurred())
			expectOK(result)

			Expect(runner.Artifacts("shopping")).To(HaveKey("orderId"))

			userID, ok := runner.Session().UserID()
			Expect(ok).To(BeTrue())
			Expect(runner.Artifacts("account")).To(HaveKeyWithValue("userId", userID))
		})
	})
})
