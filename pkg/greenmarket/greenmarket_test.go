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

package greenmarket_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

func TestSchemasResolve(t *testing.T) {
	t.Parallel()

	doc, err := greenmarket.OpenAPI()
	require.NoError(t, err)
	require.Equal(t, "GreenMarket API", doc.Info.Title)

	for _, name := range []string{
		greenmarket.SchemaRegisteredUser,
		greenmarket.SchemaLoginResponse,
		greenmarket.SchemaProfile,
		greenmarket.SchemaProduct,
		greenmarket.SchemaProducts,
		greenmarket.SchemaCreatedOrder,
		greenmarket.SchemaOrder,
		greenmarket.SchemaError,
	} {
		schema, err := greenmarket.Schema(name)
		require.NoError(t, err, name)
		require.NotNil(t, schema, name)
	}

	_, err = greenmarket.Schema("Basket")
	require.ErrorIs(t, err, greenmarket.ErrContract)
}

func TestProductSchema(t *testing.T) {
	t.Parallel()

	schema := greenmarket.MustSchema(greenmarket.SchemaProduct)

	valid := map[string]any{"id": "1", "name": "Kale", "description": "Curly", "price": 2.5, "category": "Organic", "stock": float64(3)}
	require.NoError(t, schema.VisitJSON(valid))

	negative := map[string]any{"id": "1", "name": "Kale", "description": "Curly", "price": 2.5, "category": "Organic", "stock": float64(-1)}
	require.Error(t, schema.VisitJSON(negative))

	missing := map[string]any{"id": "1", "name": "Kale"}
	require.Error(t, schema.VisitJSON(missing))
}

func TestUniqueCustomer(t *testing.T) {
	t.Parallel()

	customer := greenmarket.DefaultCustomer()

	a := customer.Unique()
	b := customer.Unique()

	require.NotEqual(t, a.Email, b.Email)
	require.True(t, strings.HasPrefix(a.Email, "juan.perez+"))
	require.True(t, strings.HasSuffix(a.Email, "@greenmarket.com"))
	require.Equal(t, customer.Password, a.Password)

	broken := greenmarket.Customer{Email: "nobody"}
	require.Equal(t, broken, broken.Unique())
}

func TestIncompleteOrderOmitsItems(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(greenmarket.CreateOrderRequest{ShippingAddress: greenmarket.PlaceholderAddress})
	require.NoError(t, err)
	require.JSONEq(t, `{"shippingAddress": "Dirección de prueba"}`, string(data))
}

func TestEndpointsEscape(t *testing.T) {
	t.Parallel()

	e := greenmarket.NewEndpoints()

	require.Equal(t, "/products/abc-invalid", e.GetProduct(greenmarket.MalformedID))
	require.Equal(t, "/orders/a%2Fb", e.GetOrder("a/b"))
}
