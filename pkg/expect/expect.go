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

// Package expect provides declarative checks over API responses.
//
// Paths are gabs dot paths into the JSON body: "email", "items.0.quantity",
// "0.id" for the first element of a top level array. The empty path (or "$")
// addresses the whole body. Checks are evaluated in order and the first
// failure is returned; nothing is retried.
package expect

import (
	"encoding/json"
	"fmt"

	"github.com/Jeffail/gabs/v2"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
)

// Check is a single predicate over a response.
type Check interface {
	fmt.Stringer

	check(s subject) error
}

// Evaluate runs checks against the response in order and returns the first
// failure, which will be an *UnexpectedStatus, *SchemaViolation or
// *AssertionFailure.
func Evaluate(response *client.Response, checks ...Check) error {
	s := subject{
		response: response,
		body:     response.Body,
		bodyErr:  response.BodyErr,
	}

	for _, c := range checks {
		if err := c.check(s); err != nil {
			return err
		}
	}

	return nil
}

// subject is what a check looks at: the response plus the part of the body in
// scope. Each narrows the body to a single list element.
type subject struct {
	response *client.Response
	body     *gabs.Container
	bodyErr  error
	prefix   string
}

// full returns the path as it should be reported.
func (s subject) full(path string) string {
	if path == "" || path == "$" {
		if s.prefix == "" {
			return "$"
		}

		return s.prefix[:len(s.prefix)-1]
	}

	return s.prefix + path
}

// lookup resolves a path, reporting whether it was found. A present JSON null
// is found with a nil value.
func (s subject) lookup(path string) (any, bool, error) {
	if s.body == nil {
		if s.bodyErr != nil {
			return nil, false, &SchemaViolation{Path: s.full(path), Reason: fmt.Sprintf("response body is not valid JSON: %v", s.bodyErr)}
		}

		return nil, false, &SchemaViolation{Path: s.full(path), Reason: "response has no JSON body"}
	}

	if path == "" || path == "$" {
		return s.body.Data(), true, nil
	}

	c := s.body.Path(path)
	if c == nil {
		return nil, false, nil
	}

	return c.Data(), true, nil
}

// require resolves a path that must hold a non-null value.
func (s subject) require(path string) (any, error) {
	value, found, err := s.lookup(path)
	if err != nil {
		return nil, err
	}

	if !found || value == nil {
		return nil, &SchemaViolation{Path: s.full(path), Reason: "field is missing or null"}
	}

	return value, nil
}

// toFloat converts any JSON number representation to float64.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}

// jsonType names the JSON type of a decoded value for error messages.
func jsonType(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}

	if _, ok := toFloat(value); ok {
		return "number"
	}

	return fmt.Sprintf("%T", value)
}
