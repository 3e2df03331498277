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

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/icqmula/greenmarket-api-testing/pkg/config"
	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		config.EnvBaseURL, config.EnvRequestTimeout, config.EnvResponseTime,
		config.EnvCustomerName, config.EnvCustomerEmail, config.EnvCustomerPass, config.EnvCustomerPhone,
		config.EnvUniqueEmail, config.EnvParallel, config.EnvPlanFile,
		config.EnvLogRequests, config.EnvLogResponses, config.EnvDebug,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	o := config.Load()

	require.Empty(t, o.BaseURL)
	require.Equal(t, 30*time.Second, o.RequestTimeout)
	require.Equal(t, greenmarket.DefaultResponseTime, o.ResponseTime)
	require.Equal(t, greenmarket.DefaultCustomer(), o.Customer())
	require.False(t, o.Parallel)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)

	t.Setenv(config.EnvBaseURL, "http://localhost:8080/v1")
	t.Setenv(config.EnvRequestTimeout, "5s")
	t.Setenv(config.EnvResponseTime, "not-a-duration")
	t.Setenv(config.EnvParallel, "true")
	t.Setenv(config.EnvLogRequests, "yes-please")

	o := config.Load()

	require.Equal(t, "http://localhost:8080/v1", o.BaseURL)
	require.Equal(t, 5*time.Second, o.RequestTimeout)
	require.Equal(t, greenmarket.DefaultResponseTime, o.ResponseTime)
	require.True(t, o.Parallel)
	require.False(t, o.LogRequests)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	// Unset rather than blank so the file is allowed to provide it.
	require.NoError(t, os.Unsetenv(config.EnvCustomerEmail))
	t.Setenv(config.EnvCustomerName, "Ana")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_USER_EMAIL=ana@example.com\nTEST_USER_NAME=Ignored\n"), 0o600))

	t.Cleanup(func() {
		_ = os.Unsetenv(config.EnvCustomerEmail)
	})

	o := config.Load(filepath.Join(t.TempDir(), "missing.env"), path)

	require.Equal(t, "ana@example.com", o.CustomerEmail)
	require.Equal(t, "Ana", o.CustomerName)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)

	t.Setenv(config.EnvRequestTimeout, "5s")

	o := config.Load()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(flags)

	require.NoError(t, flags.Parse([]string{"--response-time=500ms", "--unique-email"}))

	require.Equal(t, greenmarket.DefaultBaseURL, o.BaseURL)
	require.Equal(t, 5*time.Second, o.RequestTimeout)
	require.Equal(t, 500*time.Millisecond, o.ResponseTime)
	require.NoError(t, o.Validate())

	customer := o.Customer()
	require.NotEqual(t, o.CustomerEmail, customer.Email)
	require.True(t, strings.HasSuffix(customer.Email, "@greenmarket.com"))
	require.Equal(t, 500*time.Millisecond, o.Catalog().ResponseTime)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *config.Options {
		return &config.Options{
			BaseURL:          "https://api.greenmarket.com/v1",
			RequestTimeout:   time.Second,
			ResponseTime:     time.Second,
			CustomerEmail:    "juan@greenmarket.com",
			CustomerPassword: "secret",
		}
	}

	tests := []struct {
		name   string
		mutate func(o *config.Options)
	}{
		{"missing base URL", func(o *config.Options) { o.BaseURL = "" }},
		{"relative base URL", func(o *config.Options) { o.BaseURL = "/v1" }},
		{"unsupported scheme", func(o *config.Options) { o.BaseURL = "ftp://api.greenmarket.com" }},
		{"zero timeout", func(o *config.Options) { o.RequestTimeout = 0 }},
		{"negative response time", func(o *config.Options) { o.ResponseTime = -time.Second }},
		{"bad email", func(o *config.Options) { o.CustomerEmail = "juan" }},
		{"missing password", func(o *config.Options) { o.CustomerPassword = "" }},
	}

	require.NoError(t, valid().Validate())

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			o := valid()
			test.mutate(o)

			require.ErrorIs(t, o.Validate(), config.ErrInvalidOptions)
		})
	}
}
