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

package expect

import (
	"fmt"
	"strconv"
	"strings"
)

// UnexpectedStatus is raised when the status code is outside the allowed set.
type UnexpectedStatus struct {
	Expected []int
	Actual   int
	// Body is the raw response body, useful when the server explains itself.
	Body string
}

func (e *UnexpectedStatus) Error() string {
	expected := make([]string, len(e.Expected))

	for i, code := range e.Expected {
		expected[i] = strconv.Itoa(code)
	}

	return fmt.Sprintf("unexpected status code: expected %s, got %d, body: %s", strings.Join(expected, " or "), e.Actual, e.Body)
}

// SchemaViolation is raised when a field is missing or has the wrong JSON type.
type SchemaViolation struct {
	Path   string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Path, e.Reason)
}

// AssertionFailure is raised when a value is present but does not match.
type AssertionFailure struct {
	Path     string
	Expected string
	Actual   any
	// Err is set when the matcher itself could not evaluate the value.
	Err error
}

func (e *AssertionFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assertion failed at %q: expected %s, got %v: %v", e.Path, e.Expected, e.Actual, e.Err)
	}

	return fmt.Sprintf("assertion failed at %q: expected %s, got %v", e.Path, e.Expected, e.Actual)
}

func (e *AssertionFailure) Unwrap() error {
	return e.Err
}
