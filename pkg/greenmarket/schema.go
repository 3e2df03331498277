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

package greenmarket

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names in the embedded OpenAPI document.
const (
	SchemaRegisteredUser = "RegisteredUser"
	SchemaLoginResponse  = "LoginResponse"
	SchemaProfile        = "Profile"
	SchemaProduct        = "Product"
	SchemaProducts       = "Products"
	SchemaCreatedOrder   = "CreatedOrder"
	SchemaOrder          = "Order"
	SchemaError          = "Error"
)

//go:embed openapi.yaml
var openapiSpec []byte

//nolint:gochecknoglobals
var document = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading GreenMarket OpenAPI document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating GreenMarket OpenAPI document: %w", err)
	}

	return doc, nil
})

// OpenAPI returns the parsed contract document.
func OpenAPI() (*openapi3.T, error) {
	return document()
}

// OpenAPISpec returns the raw contract document.
func OpenAPISpec() []byte {
	return openapiSpec
}

// Schema returns a named component schema with references resolved.
func Schema(name string) (*openapi3.Schema, error) {
	doc, err := document()
	if err != nil {
		return nil, err
	}

	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("%w: unknown schema %s", ErrContract, name)
	}

	return ref.Value, nil
}

// MustSchema is Schema for the compiled in schema names, which cannot fail
// unless the embedded document is broken.
func MustSchema(name string) *openapi3.Schema {
	schema, err := Schema(name)
	if err != nil {
		panic(err)
	}

	return schema
}
