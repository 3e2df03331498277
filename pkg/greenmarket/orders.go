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

package greenmarket

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// Orders places and reads back an order. Everything but the unauthenticated
// case needs the login token, and placing an order needs a listed product.
func (c *Catalog) Orders() scenario.Module {
	order := func(quantity int, address string) scenario.BodyFunc {
		return func(vars scenario.Vars) (any, error) {
			return CreateOrderRequest{
				Items: []OrderItem{
					{ProductID: vars[ArtifactProductID], Quantity: quantity},
				},
				ShippingAddress: address,
			}, nil
		}
	}

	return scenario.Module{
		Name:      ModuleOrders,
		DependsOn: []string{ModuleUsers, ModuleProducts},
		Cases: []scenario.Case{
			{
				ID:          "CP-010",
				Order:       1,
				Description: "create an order",
				Auth:        scenario.AuthBearer,
				Requires:    []string{ArtifactToken, ArtifactProductID},
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.CreateOrder(),
					Body:   order(2, ShippingAddress),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusCreated),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("orderId"),
					expect.Present("total"),
					expect.GreaterThan("total", 0),
					expect.Equal("status", "pending"),
					expect.Present("createdAt"),
					expect.MatchesSchema(SchemaCreatedOrder, MustSchema(SchemaCreatedOrder)),
				},
				Capture: []scenario.Capture{
					{Name: ArtifactOrderID, Path: "orderId", Sink: scenario.SinkModule},
				},
			},
			{
				ID:          "CP-011",
				Order:       2,
				Description: "get the order by ID",
				Auth:        scenario.AuthBearer,
				Requires:    []string{ArtifactToken, ArtifactOrderID},
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.CreateOrder() + "/" + ref(ArtifactOrderID),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.IsList("items"),
					expect.Present("total"),
					expect.Present("status"),
					expect.Present("shippingAddress"),
					expect.MatchesSchema(SchemaOrder, MustSchema(SchemaOrder)),
				},
				ExpectWith: func(vars scenario.Vars) []expect.Check {
					return []expect.Check{
						expect.That("orderId", idEquals(vars[ArtifactOrderID])),
					}
				},
			},
			{
				ID:          "CP-012",
				Order:       3,
				Description: "creating an order without a token is rejected",
				Requires:    []string{ArtifactProductID},
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.CreateOrder(),
					Body:   order(1, PlaceholderAddress),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusUnauthorized),
					expect.ContentType(client.MediaTypeJSON),
					expect.ContainsFold("error", "authentication required"),
				},
			},
			{
				ID:          "CP-013",
				Order:       4,
				Description: "creating an order without items is rejected",
				Auth:        scenario.AuthBearer,
				Requires:    []string{ArtifactToken},
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.CreateOrder(),
					Body:   scenario.StaticBody(CreateOrderRequest{ShippingAddress: PlaceholderAddress}),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusBadRequest),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
				},
			},
			{
				ID:          "CP-014",
				Order:       5,
				Description: "creating an order with a negative quantity is rejected",
				Auth:        scenario.AuthBearer,
				Requires:    []string{ArtifactToken, ArtifactProductID},
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.CreateOrder(),
					Body:   order(-1, PlaceholderAddress),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusBadRequest),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
				},
			},
			{
				ID:          "CP-015",
				Order:       6,
				Description: "an order that does not exist is not found",
				Auth:        scenario.AuthBearer,
				Requires:    []string{ArtifactToken},
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.GetOrder(UnknownID),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusNotFound),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
					expect.ContainsFold("error", "order not found"),
				},
			},
		},
	}
}

// idEquals matches an identifier whether the API encodes it as a JSON string
// or a number.
func idEquals(expected string) types.GomegaMatcher {
	return gomega.WithTransform(func(actual any) string {
		switch v := actual.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}

		return fmt.Sprint(actual)
	}, gomega.Equal(expected))
}
