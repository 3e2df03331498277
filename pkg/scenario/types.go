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

// Package scenario runs ordered acceptance cases against an HTTP API.
//
// A Plan is a set of Modules, each an ordered list of Cases. Cases in a
// module run one at a time in ascending Order. Modules run in dependency
// order, optionally in parallel where they are independent. State flows
// between cases only through captures: a case declares what it Requires and
// is Blocked, rather than Failed, when an earlier case did not produce it.
package scenario

import (
	"net/url"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
)

// Auth says how a case authenticates.
type Auth int

const (
	// AuthNone sends no Authorization header.
	AuthNone Auth = iota
	// AuthBearer sends the session token as a bearer token. The case is
	// blocked if no token has been captured.
	AuthBearer
)

// Sink says where a captured value is stored.
type Sink int

const (
	// SinkModule keeps the value visible to later cases in the same module.
	SinkModule Sink = iota
	// SinkShared makes the value visible to dependent modules too.
	SinkShared
	// SinkToken stores the value as the session token, and shares it.
	SinkToken
	// SinkUserID stores the value as the session user ID, and shares it.
	SinkUserID
)

// Vars are the artifacts visible to a case, keyed by capture name.
type Vars map[string]string

// BodyFunc builds a request body from the visible artifacts.
type BodyFunc func(vars Vars) (any, error)

// Request is a request template. Path, query and header values may contain
// {{name}} references to artifacts.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is optional, when nil no body is sent.
	Body BodyFunc
	// BodyUses names the artifacts Body reads. A case whose body artifacts
	// are missing is blocked rather than sent.
	BodyUses []string
}

// Capture extracts a value from a successful response.
type Capture struct {
	// Name is the artifact name later cases refer to.
	Name string
	// Path is a gabs dot path into the response body.
	Path string
	Sink Sink
}

// Case is a single request and its expectations.
type Case struct {
	ID          string
	Order       int
	Description string
	Request     Request
	Auth        Auth
	// Requires lists artifacts that must exist before the case can run.
	Requires []string
	Expect   []expect.Check
	// ExpectWith adds checks that compare against artifacts, e.g. that a
	// fetched order carries the ID captured when it was created. They run
	// after Expect.
	ExpectWith func(vars Vars) []expect.Check
	Capture    []Capture
}

// Module is an ordered list of cases.
type Module struct {
	Name string
	// DependsOn names modules that must complete first.
	DependsOn []string
	Cases     []Case
}

// Plan is everything to run.
type Plan struct {
	// Variables are artifacts available to every case from the start.
	Variables map[string]string
	Modules   []Module
}

// Module returns the named module.
func (p *Plan) Module(name string) (*Module, bool) {
	for i := range p.Modules {
		if p.Modules[i].Name == name {
			return &p.Modules[i], true
		}
	}

	return nil, false
}

// State is the lifecycle of a case.
type State int

const (
	Pending State = iota
	Running
	Passed
	Failed
	Blocked
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Blocked:
		return "blocked"
	}

	return "unknown"
}

// StaticBody sends the same body every time.
func StaticBody(body any) BodyFunc {
	return func(Vars) (any, error) {
		return body, nil
	}
}
