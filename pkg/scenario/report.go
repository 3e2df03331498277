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
	"time"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Module      string
	ID          string
	Order       int
	Description string
	State       State
	// Err is why the case failed or was blocked.
	Err error
	// StatusCode is zero when no response was received.
	StatusCode int
	Elapsed    time.Duration
	TraceID    string
}

// ModuleReport holds the results of a module's cases in execution order.
type ModuleReport struct {
	Name     string
	Cases    []CaseResult
	Duration time.Duration
}

// Count returns how many cases ended in the given state.
func (m *ModuleReport) Count(state State) int {
	var n int

	for i := range m.Cases {
		if m.Cases[i].State == state {
			n++
		}
	}

	return n
}

// OK is true when every case passed.
func (m *ModuleReport) OK() bool {
	return m.Count(Passed) == len(m.Cases)
}

// Report holds module reports in plan declaration order.
type Report struct {
	Modules  []ModuleReport
	Duration time.Duration
}

// Module returns the named module's report.
func (r *Report) Module(name string) (*ModuleReport, bool) {
	for i := range r.Modules {
		if r.Modules[i].Name == name {
			return &r.Modules[i], true
		}
	}

	return nil, false
}

// Case returns the result for a case ID.
func (r *Report) Case(id string) (*CaseResult, bool) {
	for i := range r.Modules {
		for j := range r.Modules[i].Cases {
			if r.Modules[i].Cases[j].ID == id {
				return &r.Modules[i].Cases[j], true
			}
		}
	}

	return nil, false
}

// Count returns how many cases across all modules ended in the given state.
func (r *Report) Count(state State) int {
	var n int

	for i := range r.Modules {
		n += r.Modules[i].Count(state)
	}

	return n
}

// OK is true when every case in every module passed.
func (r *Report) OK() bool {
	for i := range r.Modules {
		if !r.Modules[i].OK() {
			return false
		}
	}

	return true
}

// Problems returns every failed or blocked case.
func (r *Report) Problems() []CaseResult {
	var out []CaseResult

	for i := range r.Modules {
		for _, c := range r.Modules[i].Cases {
			if c.State == Failed || c.State == Blocked {
				out = append(out, c)
			}
		}
	}

	return out
}
