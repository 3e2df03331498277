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
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultPageSize = 20

// positiveQuery parses an optional positive integer query parameter.
func positiveQuery(r *http.Request, name string, fallback int) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

func (t *Twin) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := positiveQuery(r, "limit", defaultPageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	page, ok := positiveQuery(r, "page", 1)
	if !ok {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	writeJSON(w, http.StatusOK, t.store.listProducts(r.URL.Query().Get("category"), limit, page))
}

func (t *Twin) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	if n, err := strconv.Atoi(id); err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := t.store.product(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}
