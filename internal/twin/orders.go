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
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

func (t *Twin) createOrder(w http.ResponseWriter, r *http.Request) {
	var request greenmarket.CreateOrderRequest

	if !decode(w, r, &request) {
		return
	}

	if len(request.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Order items are required")
		return
	}

	if strings.TrimSpace(request.ShippingAddress) == "" {
		writeError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	for _, item := range request.Items {
		if item.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Quantity must be greater than zero")
			return
		}
	}

	o, unknown, ok := t.store.placeOrder(callerID(r), request.Items, request.ShippingAddress, t.now())
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown product "+unknown)
		return
	}

	view := o.view()

	writeJSON(w, http.StatusCreated, greenmarket.Order{
		OrderID:   view.OrderID,
		Total:     view.Total,
		Status:    view.Status,
		CreatedAt: view.CreatedAt,
	})
}

func (t *Twin) getOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := t.store.order(callerID(r), chi.URLParam(r, "orderID"))
	if !ok {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	writeJSON(w, http.StatusOK, o.view())
}
