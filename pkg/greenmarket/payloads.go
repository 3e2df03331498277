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
	"strings"

	"github.com/google/uuid"
)

// RegisterUserRequest is the body of POST /users/register.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OrderItem is a line in an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders. Items is omitted when empty
// so incomplete orders can be expressed.
type CreateOrderRequest struct {
	Items           []OrderItem `json:"items,omitempty"`
	ShippingAddress string      `json:"shippingAddress"`
}

// User is a registered user as returned by registration and profile.
type User struct {
	UserID    any    `json:"userId"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    any    `json:"userId"`
	ExpiresIn int    `json:"expiresIn"`
}

// Product is a catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// Order is a placed order.
type Order struct {
	OrderID         string      `json:"orderId"`
	Items           []OrderItem `json:"items,omitempty"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	CreatedAt       string      `json:"createdAt"`
}

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Customer is the identity the acceptance run registers and logs in as.
type Customer struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// DefaultCustomer is the customer used by the reference acceptance run.
func DefaultCustomer() Customer {
	return Customer{
		Name:     "Juan Pérez",
		Email:    "juan.perez@greenmarket.com",
		Password: "Password123!",
		Phone:    "+56912345678",
	}
}

// Unique returns the customer with a random plus-address suffix on the email,
// so runs against a shared environment do not collide on registration.
func (c Customer) Unique() Customer {
	local, domain, ok := strings.Cut(c.Email, "@")
	if !ok {
		return c
	}

	c.Email = local + "+" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "@" + domain

	return c
}

// Registration returns the body to register the customer.
func (c Customer) Registration() RegisterUserRequest {
	return RegisterUserRequest{
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
		Phone:    c.Phone,
	}
}

// Credentials returns the body to log in as the customer.
func (c Customer) Credentials() LoginRequest {
	return LoginRequest{
		Email:    c.Email,
		Password: c.Password,
	}
}
