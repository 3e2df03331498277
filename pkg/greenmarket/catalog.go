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

// Package greenmarket is the GreenMarket API acceptance catalog: endpoints,
// typed payloads, response contracts and the CP cases grouped into the users,
// products and orders modules.
package greenmarket

import (
	"errors"
	"time"

	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// ErrContract is returned when the embedded contract cannot serve a request.
var ErrContract = errors.New("contract error")

// Module names.
const (
	ModuleUsers    = "users"
	ModuleProducts = "products"
	ModuleOrders   = "orders"
)

// Artifact names captured and consumed by the catalog.
const (
	ArtifactUserID    = "userId"
	ArtifactToken     = "token"
	ArtifactProductID = "productId"
	ArtifactOrderID   = "orderId"
)

const (
	// TokenPattern is what a JWT shaped token looks like.
	TokenPattern = `^[A-Za-z0-9-_=]+\.[A-Za-z0-9-_=]+\.?[A-Za-z0-9-_.+/=]*$`

	// DefaultResponseTime is the ceiling for timed cases.
	DefaultResponseTime = 2 * time.Second

	// WrongPassword is never a valid password.
	WrongPassword = "PasswordIncorrecto"

	// MalformedToken is not a JWT.
	MalformedToken = "not-a-valid-token"

	// OrganicCategory is the filter used by the catalog filter case.
	OrganicCategory = "organic"

	// ShippingAddress is used for orders expected to succeed.
	ShippingAddress = "Av. Principal 123, Santiago, Chile"

	// PlaceholderAddress is used for orders expected to be rejected.
	PlaceholderAddress = "Dirección de prueba"

	// UnknownID is an identifier the API never issues.
	UnknownID = "999999"

	// MalformedID is not a valid identifier at all.
	MalformedID = "abc-invalid"
)

// Catalog builds the acceptance plan for a customer.
type Catalog struct {
	// Customer is registered and logged in by the users module.
	Customer Customer
	// ResponseTime is the ceiling for timed cases.
	ResponseTime time.Duration

	endpoints *Endpoints
}

// NewCatalog returns a catalog for the customer with the default response
// time ceiling.
func NewCatalog(customer Customer) *Catalog {
	return &Catalog{
		Customer:     customer,
		ResponseTime: DefaultResponseTime,
		endpoints:    NewEndpoints(),
	}
}

// Plan returns all three modules. Orders depends on users for the token and on
// products for a product to order.
func (c *Catalog) Plan() *scenario.Plan {
	return &scenario.Plan{
		Modules: []scenario.Module{
			c.Users(),
			c.Products(),
			c.Orders(),
		},
	}
}
