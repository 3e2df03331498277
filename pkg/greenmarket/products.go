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
	"net/http"
	"net/url"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// Products browses the catalog. It needs no authentication and shares the
// first listed product ID for the orders module.
func (c *Catalog) Products() scenario.Module {
	return scenario.Module{
		Name: ModuleProducts,
		Cases: []scenario.Case{
			{
				ID:          "CP-007",
				Order:       1,
				Description: "list products",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.ListProducts(),
					Query:  url.Values{"limit": {"10"}, "page": {"1"}},
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.IsList(""),
					expect.NotEmpty(""),
					expect.Present("0.id"),
					expect.Present("0.name"),
					expect.Present("0.description"),
					expect.Present("0.price"),
					expect.Present("0.category"),
					expect.GreaterThan("0.price", 0),
					expect.MaxElapsed(c.ResponseTime),
				},
				Capture: []scenario.Capture{
					{Name: ArtifactProductID, Path: "0.id", Sink: scenario.SinkShared},
				},
			},
			{
				ID:          "CP-007b",
				Order:       2,
				Description: "filter products by category",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.ListProducts(),
					Query:  url.Values{"category": {OrganicCategory}, "limit": {"5"}},
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.IsList(""),
					expect.NotEmpty(""),
					expect.Each("", expect.EqualFold("category", OrganicCategory)),
				},
			},
			{
				ID:          "CP-007c",
				Order:       3,
				Description: "every listed product is well formed with a positive price",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.ListProducts(),
					Query:  url.Values{"limit": {"10"}, "page": {"1"}},
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.MatchesSchema(SchemaProducts, MustSchema(SchemaProducts)),
					expect.Each("",
						expect.GreaterThan("price", 0),
						expect.AtLeast("stock", 0),
					),
				},
			},
			{
				ID:          "CP-008",
				Order:       4,
				Description: "get a product by ID",
				Requires:    []string{ArtifactProductID},
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.ListProducts() + "/" + ref(ArtifactProductID),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("name"),
					expect.Present("description"),
					expect.Present("price"),
					expect.Present("category"),
					expect.Present("stock"),
					expect.GreaterThan("price", 0),
					expect.AtLeast("stock", 0),
					expect.MatchesSchema(SchemaProduct, MustSchema(SchemaProduct)),
				},
				ExpectWith: func(vars scenario.Vars) []expect.Check {
					return []expect.Check{
						expect.That("id", idEquals(vars[ArtifactProductID])),
					}
				},
			},
			{
				ID:          "CP-009",
				Order:       5,
				Description: "a product that does not exist is not found",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.GetProduct(UnknownID),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusNotFound),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
					expect.ContainsFold("error", "product not found"),
				},
			},
			{
				ID:          "CP-009b",
				Order:       6,
				Description: "a malformed product ID is rejected",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.GetProduct(MalformedID),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusBadRequest, http.StatusNotFound),
					expect.ContentType(client.MediaTypeJSON),
				},
			},
		},
	}
}
