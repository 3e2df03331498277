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

package client

import (
	"errors"
	"fmt"
)

// TransportError is returned when no HTTP response could be obtained at all,
// e.g. connection refused, DNS failure, client timeout or a truncated body.
// It is never used for an HTTP error status.
type TransportError struct {
	Method  string
	URL     string
	TraceID string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s (trace ID: %s): %v", e.Method, e.URL, e.TraceID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err, or anything it wraps, is a TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError

	return errors.As(err, &terr)
}
