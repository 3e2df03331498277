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
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/session"
)

// TokenArtifact is reported as missing when a bearer case runs before any
// token was captured.
const TokenArtifact = "session.token"

// Runner executes plans. A runner owns one session and one set of artifacts,
// so it represents a single run. Create a new one per run.
type Runner struct {
	sender   Sender
	config   client.RequestConfig
	session  *session.Store
	logger   logr.Logger
	parallel bool

	lock   sync.Mutex
	shared Vars
	local  map[string]Vars
}

// Option customizes a Runner.
type Option func(*Runner)

// WithSession uses an existing session, e.g. one already holding a token.
func WithSession(s *session.Store) Option {
	return func(r *Runner) {
		r.session = s
	}
}

// WithLogger sets where case progress is logged.
func WithLogger(logger logr.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithParallel runs independent modules concurrently. Cases within a module
// are always sequential.
func WithParallel(parallel bool) Option {
	return func(r *Runner) {
		r.parallel = parallel
	}
}

// WithVariables seeds artifacts visible to every case.
func WithVariables(vars Vars) Option {
	return func(r *Runner) {
		maps.Copy(r.shared, vars)
	}
}

// NewRunner returns a runner that sends through sender using config as the
// base for every request.
func NewRunner(sender Sender, config client.RequestConfig, options ...Option) *Runner {
	r := &Runner{
		sender:  sender,
		config:  config,
		session: session.New(),
		logger:  logr.Discard(),
		shared:  Vars{},
		local:   map[string]Vars{},
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// Session returns the run's session state.
func (r *Runner) Session() *session.Store {
	return r.session
}

// Artifacts returns a copy of what a case in the module can see.
func (r *Runner) Artifacts(module string) Vars {
	r.lock.Lock()
	defer r.lock.Unlock()

	vars := maps.Clone(r.shared)
	maps.Copy(vars, r.local[module])

	return vars
}

// Run validates and executes the whole plan. An error is only returned for an
// invalid plan or a cancelled context, case failures are in the report.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*Report, error) {
	ordered, err := plan.schedule()
	if err != nil {
		return nil, err
	}

	start := time.Now()

	r.lock.Lock()
	maps.Copy(r.shared, plan.Variables)
	r.lock.Unlock()

	results := map[string]ModuleReport{}

	if r.parallel {
		if results, err = r.runParallel(ctx, ordered); err != nil {
			return nil, err
		}
	} else {
		for _, m := range ordered {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results[m.Name] = r.RunModule(ctx, m)
		}
	}

	report := &Report{
		Duration: time.Since(start),
	}

	for _, m := range plan.Modules {
		report.Modules = append(report.Modules, results[m.Name])
	}

	return report, nil
}

// runParallel starts every module at once, each waiting for its dependencies
// to close their done channels before running.
func (r *Runner) runParallel(ctx context.Context, ordered []*Module) (map[string]ModuleReport, error) {
	done := map[string]chan struct{}{}

	for _, m := range ordered {
		done[m.Name] = make(chan struct{})
	}

	var lock sync.Mutex

	results := map[string]ModuleReport{}

	group, gctx := errgroup.WithContext(ctx)

	for _, m := range ordered {
		group.Go(func() error {
			defer close(done[m.Name])

			for _, dep := range m.DependsOn {
				select {
				case <-done[dep]:
				case <-gctx.Done():
					return gctx.Err()
				}
			}

			result := r.RunModule(gctx, m)

			lock.Lock()
			defer lock.Unlock()

			results[m.Name] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// RunModule runs a module's cases in ascending order. A failing case does not
// stop the module, later cases that need its captures are blocked instead.
func (r *Runner) RunModule(ctx context.Context, m *Module) ModuleReport {
	start := time.Now()

	log := r.logger.WithValues("module", m.Name)
	log.Info("module started", "cases", len(m.Cases))

	report := ModuleReport{
		Name: m.Name,
	}

	for _, c := range sortedCases(m.Cases) {
		report.Cases = append(report.Cases, r.RunCase(ctx, m.Name, c))
	}

	report.Duration = time.Since(start)

	log.Info("module finished", "passed", report.Count(Passed), "failed", report.Count(Failed), "blocked", report.Count(Blocked), "duration", report.Duration)

	return report
}

// RunCase runs a single case as part of the named module.
func (r *Runner) RunCase(ctx context.Context, module string, c Case) CaseResult {
	result := CaseResult{
		Module:      module,
		ID:          c.ID,
		Order:       c.Order,
		Description: c.Description,
		State:       Pending,
	}

	log := r.logger.WithValues("module", module, "case", c.ID)

	vars := r.Artifacts(module)

	var missing []string

	for _, name := range c.uses() {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}

	config := r.config

	if c.Auth == AuthBearer {
		token, ok := r.session.Token()
		if !ok {
			missing = append(missing, TokenArtifact)
		}

		config = config.WithBearerToken(token)
	}

	if len(missing) > 0 {
		result.State = Blocked
		result.Err = &BlockedDependency{CaseID: c.ID, Missing: missing}

		log.Info("case blocked", "description", c.Description, "missing", missing)

		return result
	}

	result.State = Running

	log.V(1).Info("case running", "description", c.Description)

	request, err := buildRequest(c.Request, vars)
	if err != nil {
		return r.fail(log, result, err)
	}

	response, err := r.sender.Send(ctx, config, request)
	if err != nil {
		return r.fail(log, result, err)
	}

	result.StatusCode = response.StatusCode
	result.Elapsed = response.Elapsed
	result.TraceID = response.TraceID

	checks := c.Expect

	if c.ExpectWith != nil {
		checks = append(slices.Clone(checks), c.ExpectWith(vars)...)
	}

	if err := expect.Evaluate(response, checks...); err != nil {
		return r.fail(log, result, err)
	}

	if err := r.capture(module, c, response); err != nil {
		return r.fail(log, result, err)
	}

	result.State = Passed

	log.Info("case passed", "description", c.Description, "status", result.StatusCode, "duration", result.Elapsed)

	return result
}

func (r *Runner) fail(log logr.Logger, result CaseResult, err error) CaseResult {
	result.State = Failed
	result.Err = err

	log.Error(err, "case failed", "description", result.Description, "status", result.StatusCode, "traceID", result.TraceID)

	return result
}

// buildRequest expands a request template.
func buildRequest(template Request, vars Vars) (client.Request, error) {
	path, err := ExpandPath(template.Path, vars)
	if err != nil {
		return client.Request{}, fmt.Errorf("expanding path: %w", err)
	}

	query, err := expandQuery(template.Query, vars)
	if err != nil {
		return client.Request{}, fmt.Errorf("expanding query: %w", err)
	}

	headers, err := expandHeaders(template.Headers, vars)
	if err != nil {
		return client.Request{}, fmt.Errorf("expanding headers: %w", err)
	}

	request := client.Request{
		Method:  template.Method,
		Path:    path,
		Query:   query,
		Headers: headers,
	}

	if template.Body != nil {
		if request.Body, err = template.Body(vars); err != nil {
			return client.Request{}, fmt.Errorf("building body: %w", err)
		}
	}

	return request, nil
}

// capture extracts every declared value first, then stores them all, so a
// case that fails part way through capturing leaves no partial state behind.
func (r *Runner) capture(module string, c Case, response *client.Response) error {
	if len(c.Capture) == 0 {
		return nil
	}

	values := make([]string, len(c.Capture))

	for i, capture := range c.Capture {
		if response.Body == nil {
			return fmt.Errorf("%w: %s from a response with no JSON body", ErrCapture, capture.Path)
		}

		node := response.Body.Path(capture.Path)
		if node == nil || node.Data() == nil {
			return fmt.Errorf("%w: %s not found in response", ErrCapture, capture.Path)
		}

		value, err := stringify(node.Data())
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCapture, capture.Path, err)
		}

		values[i] = value
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for i, capture := range c.Capture {
		switch capture.Sink {
		case SinkModule:
			if r.local[module] == nil {
				r.local[module] = Vars{}
			}

			r.local[module][capture.Name] = values[i]
		case SinkShared:
			r.shared[capture.Name] = values[i]
		case SinkToken:
			r.session.SetToken(values[i])
			r.shared[capture.Name] = values[i]
		case SinkUserID:
			r.session.SetUserID(values[i])
			r.shared[capture.Name] = values[i]
		}
	}

	return nil
}

// stringify renders a captured JSON value as it would appear in a URL.
func stringify(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// CaseIDs lists the plan's case IDs in execution order, modules in dependency
// order.
func (p *Plan) CaseIDs() ([]string, error) {
	ordered, err := p.schedule()
	if err != nil {
		return nil, err
	}

	var ids []string

	for _, m := range ordered {
		for _, c := range sortedCases(m.Cases) {
			ids = append(ids, c.ID)
		}
	}

	return slices.Clip(ids), nil
}
