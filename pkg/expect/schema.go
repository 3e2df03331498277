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
	"github.com/getkin/kin-openapi/openapi3"
)

// schemaCheck validates the body against an OpenAPI schema.
type schemaCheck struct {
	name   string
	schema *openapi3.Schema
}

// MatchesSchema passes when the whole body (or list element, inside Each)
// validates against schema. name is only used for reporting.
func MatchesSchema(name string, schema *openapi3.Schema) Check {
	return schemaCheck{name: name, schema: schema}
}

func (c schemaCheck) String() string {
	return "body matches schema " + c.name
}

func (c schemaCheck) check(s subject) error {
	value, err := s.require("")
	if err != nil {
		return err
	}

	if err := c.schema.VisitJSON(value); err != nil {
		return &SchemaViolation{Path: s.full(""), Reason: c.name + ": " + err.Error()}
	}

	return nil
}
