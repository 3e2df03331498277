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

package scenario

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPlan is returned when a plan cannot be run as written.
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrTemplate is returned when a template is malformed or refers to an
	// artifact that does not exist.
	ErrTemplate = errors.New("template error")

	// ErrCapture is returned when a value to capture is not in the response.
	ErrCapture = errors.New("capture failed")
)

// BlockedDependency is raised instead of running a case whose required
// artifacts were never captured, typically because the producing case failed.
type BlockedDependency struct {
	CaseID  string
	Missing []string
}

func (e *BlockedDependency) Error() string {
	return fmt.Sprintf("case %s blocked, missing %s", e.CaseID, strings.Join(e.Missing, ", "))
}

// IsBlocked returns true if the error is, or wraps, a BlockedDependency.
func IsBlocked(err error) bool {
	var target *BlockedDependency

	return errors.As(err, &target)
}
