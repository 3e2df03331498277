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

package api

import (
	"maps"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// RegistrationPayloadBuilder builds registration bodies, including invalid
// ones, so it works on a map rather than the typed request.
type RegistrationPayloadBuilder struct {
	payload map[string]interface{}
}

// NewRegistrationPayload starts from the customer's registration.
func NewRegistrationPayload(customer greenmarket.Customer) *RegistrationPayloadBuilder {
	return &RegistrationPayloadBuilder{
		payload: map[string]interface{}{
			"name":     customer.Name,
			"email":    customer.Email,
			"password": customer.Password,
			"phone":    customer.Phone,
		},
	}
}

// With sets a field to any value, including one of the wrong type.
func (b *RegistrationPayloadBuilder) With(field string, value interface{}) *RegistrationPayloadBuilder {
	b.payload[field] = value
	return b
}

// Without removes a field.
func (b *RegistrationPayloadBuilder) Without(field string) *RegistrationPayloadBuilder {
	delete(b.payload, field)
	return b
}

// Build returns a copy of the payload.
func (b *RegistrationPayloadBuilder) Build() map[string]interface{} {
	return maps.Clone(b.payload)
}

// OrderPayloadBuilder builds order bodies.
type OrderPayloadBuilder struct {
	request greenmarket.CreateOrderRequest
}

// NewOrderPayload starts an order shipping to the default address with no
// items.
func NewOrderPayload() *OrderPayloadBuilder {
	return &OrderPayloadBuilder{
		request: greenmarket.CreateOrderRequest{
			ShippingAddress: greenmarket.ShippingAddress,
		},
	}
}

// WithItem adds a line. Quantity is not validated, so invalid orders can be
// built too.
func (b *OrderPayloadBuilder) WithItem(productID string, quantity int) *OrderPayloadBuilder {
	b.request.Items = append(b.request.Items, greenmarket.OrderItem{ProductID: productID, Quantity: quantity})
	return b
}

// WithShippingAddress replaces the shipping address.
func (b *OrderPayloadBuilder) WithShippingAddress(address string) *OrderPayloadBuilder {
	b.request.ShippingAddress = address
	return b
}

// Build returns the completed order request.
func (b *OrderPayloadBuilder) Build() greenmarket.CreateOrderRequest {
	request := b.request
	request.Items = append([]greenmarket.OrderItem(nil), b.request.Items...)

	return request
}
