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
	"time"

	"github.com/icqmula/greenmarket-api-testing/pkg/config"
)

// TestConfig is the run configuration plus the knobs only the suites use.
type TestConfig struct {
	*config.Options

	// TestTimeout bounds a whole spec.
	TestTimeout time.Duration
	// SkipIntegration skips every suite, for builds without a target.
	SkipIntegration bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// An empty base URL is allowed, the suites then start an in-process twin.
// Returns an error if a configured target is unusable.
func LoadTestConfig() (*TestConfig, error) {
	options := config.Load(
		"../../.env",    // test/.env from the test/api/suites directory
		"../../../.env", // Repository root
	)

	testConfig := &TestConfig{
		Options:         options,
		TestTimeout:     config.DurationFromEnv("TEST_TIMEOUT", 5*time.Minute),
		SkipIntegration: config.BoolFromEnv("SKIP_INTEGRATION", false),
	}

	if options.BaseURL != "" {
		if err := options.Validate(); err != nil {
			return nil, err
		}
	}

	return testConfig, nil
}

// UseTwin reports whether no target is configured.
func (c *TestConfig) UseTwin() bool {
	return c.BaseURL == ""
}
