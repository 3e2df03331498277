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

// Package api provides acceptance test utilities for the GreenMarket API.
//
// # Typed Client
//
// APIClient is a thin typed layer over pkg/client used by the ginkgo suites.
// Typed calls decode into the payload types in pkg/greenmarket and fail on
// an unexpected status, so happy paths read as plain Go. Negative cases use
// Do and check the raw response with pkg/expect, the same checks the
// scenario catalog uses.
//
// Every request carries W3C trace context, and failures print the trace ID
// so the request can be found in the server logs.
//
// # Targets
//
// Setting API_BASE_URL runs the suites against that environment. Without it
// the suites start the in-process twin from internal/twin, so they always run.
package api
