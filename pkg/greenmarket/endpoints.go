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
	"net/url"
)

// DefaultBaseURL is the public GreenMarket API.
const DefaultBaseURL = "https://api.greenmarket.com/v1"

// Endpoints contains all API endpoint patterns, relative to the base URL.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// User endpoints.
func (e *Endpoints) RegisterUser() string {
	return "/users/register"
}

func (e *Endpoints) Login() string {
	return "/users/login"
}

func (e *Endpoints) Profile() string {
	return "/users/profile"
}

// Product catalog endpoints.
func (e *Endpoints) ListProducts() string {
	return "/products"
}

func (e *Endpoints) GetProduct(productID string) string {
	return fmt.Sprintf("/products/%s", url.PathEscape(productID))
}

// Order endpoints.
func (e *Endpoints) CreateOrder() string {
	return "/orders"
}

func (e *Endpoints) GetOrder(orderID string) string {
	return fmt.Sprintf("/orders/%s", url.PathEscape(orderID))
}

// ref is a scenario template reference to a captured artifact. The runner
// substitutes it before sending, path escaping the captured value.
func ref(artifact string) string {
	return "{{" + artifact + "}}"
}
