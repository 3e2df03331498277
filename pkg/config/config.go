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

// Package config holds the options shared by the CLI and the acceptance
// suites. Values come from the environment, optionally seeded from a .env
// file, and may then be overridden by flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// ErrInvalidOptions is returned by Validate.
var ErrInvalidOptions = errors.New("invalid options")

// Environment variables understood by Load.
const (
	EnvBaseURL        = "API_BASE_URL"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvResponseTime   = "RESPONSE_TIME_LIMIT"
	EnvCustomerName   = "TEST_USER_NAME"
	EnvCustomerEmail  = "TEST_USER_EMAIL"
	EnvCustomerPass   = "TEST_USER_PASSWORD"
	EnvCustomerPhone  = "TEST_USER_PHONE"
	EnvUniqueEmail    = "UNIQUE_EMAIL"
	EnvParallel       = "PARALLEL_MODULES"
	EnvPlanFile       = "PLAN_FILE"
	EnvLogRequests    = "LOG_REQUESTS"
	EnvLogResponses   = "LOG_RESPONSES"
	EnvDebug          = "DEBUG_LOGGING"
)

const (
	defaultRequestTimeout = 30 * time.Second
)

// Options configures an acceptance run.
type Options struct {
	// BaseURL is the API root. Empty means "not configured", which the
	// suites take as a cue to start an in-process twin.
	BaseURL string
	// RequestTimeout bounds every round trip.
	RequestTimeout time.Duration
	// ResponseTime is the ceiling for the timed cases.
	ResponseTime time.Duration

	CustomerName     string
	CustomerEmail    string
	CustomerPassword string
	CustomerPhone    string

	// UniqueEmail plus-addresses the customer email so repeated runs
	// against the same environment register a fresh user.
	UniqueEmail bool
	// Parallel runs independent modules concurrently.
	Parallel bool
	// PlanFile replaces the built in catalog with a YAML plan.
	PlanFile string

	LogRequests  bool
	LogResponses bool
	Debug        bool
}

// Load reads options from the environment after loading the first .env file
// found in paths, if any. Unparseable values fall back to the defaults.
func Load(paths ...string) *Options {
	loadEnvFile(paths...)

	customer := greenmarket.DefaultCustomer()

	return &Options{
		BaseURL:          os.Getenv(EnvBaseURL),
		RequestTimeout:   DurationFromEnv(EnvRequestTimeout, defaultRequestTimeout),
		ResponseTime:     DurationFromEnv(EnvResponseTime, greenmarket.DefaultResponseTime),
		CustomerName:     getWithDefault(EnvCustomerName, customer.Name),
		CustomerEmail:    getWithDefault(EnvCustomerEmail, customer.Email),
		CustomerPassword: getWithDefault(EnvCustomerPass, customer.Password),
		CustomerPhone:    getWithDefault(EnvCustomerPhone, customer.Phone),
		UniqueEmail:      BoolFromEnv(EnvUniqueEmail, false),
		Parallel:         BoolFromEnv(EnvParallel, false),
		PlanFile:         os.Getenv(EnvPlanFile),
		LogRequests:      BoolFromEnv(EnvLogRequests, false),
		LogResponses:     BoolFromEnv(EnvLogResponses, false),
		Debug:            BoolFromEnv(EnvDebug, false),
	}
}

// AddFlags registers flags defaulting to the current values, so the
// environment provides defaults and flags have the last word.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = greenmarket.DefaultBaseURL
	}

	f.StringVar(&o.BaseURL, "base-url", baseURL, "GreenMarket API root.")
	f.DurationVar(&o.RequestTimeout, "request-timeout", o.RequestTimeout, "Timeout for a single request.")
	f.DurationVar(&o.ResponseTime, "response-time", o.ResponseTime, "Response time ceiling for timed cases.")
	f.StringVar(&o.CustomerName, "customer-name", o.CustomerName, "Name of the test customer.")
	f.StringVar(&o.CustomerEmail, "customer-email", o.CustomerEmail, "Email of the test customer.")
	f.StringVar(&o.CustomerPassword, "customer-password", o.CustomerPassword, "Password of the test customer.")
	f.StringVar(&o.CustomerPhone, "customer-phone", o.CustomerPhone, "Phone number of the test customer.")
	f.BoolVar(&o.UniqueEmail, "unique-email", o.UniqueEmail, "Make the customer email unique for this run.")
	f.BoolVar(&o.Parallel, "parallel", o.Parallel, "Run independent modules concurrently.")
	f.StringVar(&o.PlanFile, "plan", o.PlanFile, "YAML plan to run instead of the built in catalog.")
	f.BoolVar(&o.LogRequests, "log-requests", o.LogRequests, "Log every request.")
	f.BoolVar(&o.LogResponses, "log-responses", o.LogResponses, "Log every response body.")
	f.BoolVar(&o.Debug, "debug", o.Debug, "Enable debug logging.")
}

// Validate checks the options are usable for a run against BaseURL.
func (o *Options) Validate() error {
	var problems []string

	if o.BaseURL == "" {
		problems = append(problems, "base URL is required")
	} else if u, err := url.Parse(o.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("base URL %q is not an absolute http(s) URL", o.BaseURL))
	}

	if o.RequestTimeout <= 0 {
		problems = append(problems, "request timeout must be positive")
	}

	if o.ResponseTime <= 0 {
		problems = append(problems, "response time must be positive")
	}

	if !strings.Contains(o.CustomerEmail, "@") {
		problems = append(problems, fmt.Sprintf("customer email %q is not an email address", o.CustomerEmail))
	}

	if o.CustomerPassword == "" {
		problems = append(problems, "customer password is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(problems, ", "))
	}

	return nil
}

// Customer returns the configured customer, made unique if requested.
func (o *Options) Customer() greenmarket.Customer {
	customer := greenmarket.Customer{
		Name:     o.CustomerName,
		Email:    o.CustomerEmail,
		Password: o.CustomerPassword,
		Phone:    o.CustomerPhone,
	}

	if o.UniqueEmail {
		customer = customer.Unique()
	}

	return customer
}

// Catalog returns the case catalog for the configured customer and ceiling.
func (o *Options) Catalog() *greenmarket.Catalog {
	catalog := greenmarket.NewCatalog(o.Customer())
	catalog.ResponseTime = o.ResponseTime

	return catalog
}

// RequestConfig returns the shared request configuration.
func (o *Options) RequestConfig() client.RequestConfig {
	return client.NewRequestConfig(o.BaseURL)
}

// Client returns an HTTP client honouring the timeout and logging options.
func (o *Options) Client(logger logr.Logger) *client.Client {
	return client.New(
		client.WithTimeout(o.RequestTimeout),
		client.WithLogger(logger),
		client.WithRequestLogging(o.LogRequests),
		client.WithResponseLogging(o.LogResponses),
	)
}

func getWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// DurationFromEnv gets a duration from environment variable or returns default.
func DurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// BoolFromEnv gets a boolean from environment variable or returns default.
func BoolFromEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// loadEnvFile loads the first existing file. Variables already in the
// environment win. A missing file is fine, CI sets variables directly.
func loadEnvFile(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		if err := godotenv.Load(absPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", absPath, err)
		}

		return
	}
}
