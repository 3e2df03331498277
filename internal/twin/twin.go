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

// Package twin is an in-process GreenMarket API used as a hermetic target for
// the acceptance suites and the CLI's --twin mode. It implements the contract
// the suites verify, nothing more: users with JWT login, a seeded product
// catalog and per-user orders, all in memory.
package twin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// DefaultTokenTTL matches the expiresIn GreenMarket reports.
const DefaultTokenTTL = time.Hour

// Twin serves the GreenMarket API.
type Twin struct {
	store    *store
	tokens   *tokens
	logger   logr.Logger
	latency  time.Duration
	now      func() time.Time
	products []greenmarket.Product
	ttl      time.Duration
	router   *chi.Mux
}

// Option customizes a Twin.
type Option func(*Twin)

// WithLogger logs every request.
func WithLogger(logger logr.Logger) Option {
	return func(t *Twin) {
		t.logger = logger
	}
}

// WithLatency delays every response.
func WithLatency(latency time.Duration) Option {
	return func(t *Twin) {
		t.latency = latency
	}
}

// WithClock replaces the time source used for timestamps and token expiry.
func WithClock(now func() time.Time) Option {
	return func(t *Twin) {
		t.now = now
	}
}

// WithProducts replaces the seeded catalog.
func WithProducts(products []greenmarket.Product) Option {
	return func(t *Twin) {
		t.products = products
	}
}

// WithTokenTTL sets how long issued tokens are valid for.
func WithTokenTTL(ttl time.Duration) Option {
	return func(t *Twin) {
		t.ttl = ttl
	}
}

// New returns a twin with an empty user base and the default catalog.
func New(options ...Option) (*Twin, error) {
	t := &Twin{
		logger:   logr.Discard(),
		now:      time.Now,
		products: DefaultProducts(),
		ttl:      DefaultTokenTTL,
	}

	for _, o := range options {
		o(t)
	}

	tokens, err := newTokens(t.ttl)
	if err != nil {
		return nil, err
	}

	t.tokens = tokens
	t.store = newStore(t.products)
	t.router = t.routes()

	return t, nil
}

// Handler returns the HTTP handler, rooted at the API base path.
func (t *Twin) Handler() http.Handler {
	return t.router
}

// Start serves the twin on a loopback listener. The base URL of the API is
// the server URL, close the server when done.
func (t *Twin) Start() *httptest.Server {
	return httptest.NewServer(t.router)
}

// Reset forgets every user and order. The catalog is kept.
func (t *Twin) Reset() {
	t.store.reset()
}

func (t *Twin) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(t.requestLog)
	r.Use(t.latencyInjection)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", t.register)
		r.Post("/login", t.login)

		r.With(t.bearerAuth).Get("/profile", t.profile)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", t.listProducts)
		r.Get("/{productID}", t.getProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(t.bearerAuth)

		r.Post("/", t.createOrder)
		r.Get("/{orderID}", t.getOrder)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func (t *Twin) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		t.logger.V(1).Info("twin request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "traceparent", r.Header.Get("Traceparent"))
	})
}

func (t *Twin) latencyInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.latency > 0 {
			select {
			case <-time.After(t.latency):
			case <-r.Context().Done():
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

type userIDKey struct{}

// bearerAuth rejects requests without a valid token and records the caller.
func (t *Twin) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		userID, err := t.tokens.verify(raw, t.now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

func callerID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)

	return id
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	//nolint:errchkjson
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, greenmarket.ErrorResponse{Error: message})
}

// decode reads a JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	return true
}
