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

package twin

import (
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// user is a registered account.
type user struct {
	id        string
	name      string
	email     string
	password  string
	phone     string
	createdAt time.Time
}

func (u *user) view() greenmarket.User {
	return greenmarket.User{
		UserID:    u.id,
		Name:      u.name,
		Email:     u.email,
		Phone:     u.phone,
		CreatedAt: u.createdAt.UTC().Format(time.RFC3339),
	}
}

// order is a placed order, visible only to its owner.
type order struct {
	id        string
	owner     string
	items     []greenmarket.OrderItem
	total     float64
	status    string
	address   string
	createdAt time.Time
}

func (o *order) view() greenmarket.Order {
	return greenmarket.Order{
		OrderID:         o.id,
		Items:           slices.Clone(o.items),
		Total:           o.total,
		Status:          o.status,
		ShippingAddress: o.address,
		CreatedAt:       o.createdAt.UTC().Format(time.RFC3339),
	}
}

// store is the twin's in-memory state.
type store struct {
	lock     sync.RWMutex
	users    map[string]*user
	products []greenmarket.Product
	orders   map[string]*order
}

func newStore(products []greenmarket.Product) *store {
	return &store{
		users:    map[string]*user{},
		products: slices.Clone(products),
		orders:   map[string]*order{},
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// register adds a user, returning false if the email is taken.
func (s *store) register(u *user) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	key := emailKey(u.email)

	if _, ok := s.users[key]; ok {
		return false
	}

	u.id = uuid.NewString()
	s.users[key] = u

	return true
}

func (s *store) userByEmail(email string) (*user, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	u, ok := s.users[emailKey(email)]

	return u, ok
}

func (s *store) userByID(id string) (*user, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, u := range s.users {
		if u.id == id {
			return u, true
		}
	}

	return nil, false
}

// listProducts filters by case-insensitive category and pages the result.
func (s *store) listProducts(category string, limit, page int) []greenmarket.Product {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var matched []greenmarket.Product

	for _, p := range s.products {
		if category == "" || strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []greenmarket.Product{}
	}

	return matched[start:min(start+limit, len(matched))]
}

func (s *store) product(id string) (greenmarket.Product, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}

	return greenmarket.Product{}, false
}

// placeOrder prices the items and records the order. Unknown products are
// returned so the caller can reject the request.
func (s *store) placeOrder(owner string, items []greenmarket.OrderItem, address string, now time.Time) (*order, string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var total float64

	for _, item := range items {
		index := slices.IndexFunc(s.products, func(p greenmarket.Product) bool { return p.ID == item.ProductID })
		if index < 0 {
			return nil, item.ProductID, false
		}

		total += s.products[index].Price * float64(item.Quantity)
	}

	o := &order{
		id:        uuid.NewString(),
		owner:     owner,
		items:     slices.Clone(items),
		total:     math.Round(total*100) / 100,
		status:    "pending",
		address:   address,
		createdAt: now,
	}

	s.orders[o.id] = o

	return o, "", true
}

func (s *store) order(owner, id string) (*order, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	o, ok := s.orders[id]
	if !ok || o.owner != owner {
		return nil, false
	}

	return o, true
}

func (s *store) reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.users = map[string]*user{}
	s.orders = map[string]*order{}
}

// DefaultProducts is the catalog a new twin serves.
func DefaultProducts() []greenmarket.Product {
	return []greenmarket.Product{
		{ID: "1", Name: "Organic Kale", Description: "Fresh curly kale, 250g bunch", Price: 2.49, Category: "Organic", Stock: 40},
		{ID: "2", Name: "Free Range Eggs", Description: "Dozen large free range eggs", Price: 4.99, Category: "Dairy", Stock: 25},
		{ID: "3", Name: "Organic Avocados", Description: "Pack of four Hass avocados", Price: 5.25, Category: "organic", Stock: 12},
		{ID: "4", Name: "Sourdough Loaf", Description: "Stone baked sourdough, 800g", Price: 3.8, Category: "Bakery", Stock: 0},
		{ID: "5", Name: "Organic Quinoa", Description: "White quinoa, 500g", Price: 6.1, Category: "ORGANIC", Stock: 60},
		{ID: "6", Name: "Almond Milk", Description: "Unsweetened almond drink, 1l", Price: 2.15, Category: "Dairy", Stock: 33},
		{ID: "7", Name: "Honeycrisp Apples", Description: "1kg bag of apples", Price: 3.4, Category: "Fruit", Stock: 18},
		{ID: "8", Name: "Organic Spinach", Description: "Baby spinach leaves, 200g", Price: 1.99, Category: "Organic", Stock: 22},
	}
}
