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
	"bytes"
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v3"

	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
)

// planFile is the YAML form of a plan. ${VAR} references are substituted from
// the environment before parsing ($$ is a literal dollar), {{name}} references
// are artifacts expanded at run time.
type planFile struct {
	Variables map[string]string `yaml:"variables"`
	Modules   []moduleFile      `yaml:"modules"`
}

type moduleFile struct {
	Name      string     `yaml:"name"`
	DependsOn []string   `yaml:"dependsOn"`
	Cases     []caseFile `yaml:"cases"`
}

type caseFile struct {
	ID          string        `yaml:"id"`
	Order       int           `yaml:"order"`
	Description string        `yaml:"description"`
	Request     requestFile   `yaml:"request"`
	Auth        string        `yaml:"auth"`
	Requires    []string      `yaml:"requires"`
	Expect      expectFile    `yaml:"expect"`
	Capture     []captureFile `yaml:"capture"`
}

type requestFile struct {
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Query   map[string]string `yaml:"query"`
	Headers map[string]string `yaml:"headers"`
	Body    any               `yaml:"body"`
}

type expectFile struct {
	Status       []int                 `yaml:"status"`
	ContentType  string                `yaml:"contentType"`
	MaxElapsed   time.Duration         `yaml:"maxElapsed"`
	Present      []string              `yaml:"present"`
	Absent       []string              `yaml:"absent"`
	Type         map[string]string     `yaml:"type"`
	NotEmpty     []string              `yaml:"notEmpty"`
	Equal        map[string]any        `yaml:"equal"`
	EqualFold    map[string]string     `yaml:"equalFold"`
	ContainsFold map[string]string     `yaml:"containsFold"`
	Matches      map[string]string     `yaml:"matches"`
	GreaterThan  map[string]float64    `yaml:"greaterThan"`
	AtLeast      map[string]float64    `yaml:"atLeast"`
	LessThan     map[string]float64    `yaml:"lessThan"`
	Each         map[string]expectFile `yaml:"each"`
}

type captureFile struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Sink string `yaml:"sink"`
}

// LoadPlan reads, parses and validates a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}

	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}

	return plan, nil
}

// ParsePlan parses and validates a YAML plan.
func ParsePlan(data []byte) (*Plan, error) {
	subst, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("substituting environment: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader([]byte(subst)))
	decoder.KnownFields(true)

	var file planFile

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	plan := &Plan{
		Variables: file.Variables,
	}

	for _, m := range file.Modules {
		module := Module{
			Name:      m.Name,
			DependsOn: m.DependsOn,
		}

		for _, c := range m.Cases {
			converted, err := c.convert()
			if err != nil {
				return nil, fmt.Errorf("%w: case %s: %w", ErrInvalidPlan, c.ID, err)
			}

			module.Cases = append(module.Cases, converted)
		}

		plan.Modules = append(plan.Modules, module)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

func (c *caseFile) convert() (Case, error) {
	out := Case{
		ID:          c.ID,
		Order:       c.Order,
		Description: c.Description,
		Requires:    c.Requires,
		Request: Request{
			Method:  c.Request.Method,
			Path:    c.Request.Path,
			Headers: c.Request.Headers,
		},
	}

	if len(c.Request.Query) > 0 {
		out.Request.Query = url.Values{}

		for key, value := range c.Request.Query {
			out.Request.Query.Set(key, value)
		}
	}

	if c.Request.Body != nil {
		out.Request.Body, out.Request.BodyUses = TemplateBody(c.Request.Body)
	}

	switch c.Auth {
	case "", "none":
		out.Auth = AuthNone
	case "bearer":
		out.Auth = AuthBearer
	default:
		return Case{}, fmt.Errorf("unknown auth %q", c.Auth)
	}

	checks, err := c.Expect.checks()
	if err != nil {
		return Case{}, err
	}

	out.Expect = checks

	for _, capture := range c.Capture {
		sink, err := parseSink(capture.Sink)
		if err != nil {
			return Case{}, err
		}

		out.Capture = append(out.Capture, Capture{Name: capture.Name, Path: capture.Path, Sink: sink})
	}

	return out, nil
}

func parseSink(s string) (Sink, error) {
	switch s {
	case "", "module":
		return SinkModule, nil
	case "shared":
		return SinkShared, nil
	case "token":
		return SinkToken, nil
	case "userId":
		return SinkUserID, nil
	}

	return 0, fmt.Errorf("unknown capture sink %q", s)
}

// sortedKeys gives map driven checks a stable evaluation order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))

	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// checks converts the expectations in the order a human would read them:
// status first, then headers and timing, then the body.
func (e *expectFile) checks() ([]expect.Check, error) {
	var checks []expect.Check

	if len(e.Status) > 0 {
		checks = append(checks, expect.Status(e.Status...))
	}

	if e.ContentType != "" {
		checks = append(checks, expect.ContentType(e.ContentType))
	}

	if e.MaxElapsed > 0 {
		checks = append(checks, expect.MaxElapsed(e.MaxElapsed))
	}

	for _, path := range e.Present {
		checks = append(checks, expect.Present(path))
	}

	for _, path := range e.Absent {
		checks = append(checks, expect.Absent(path))
	}

	for _, path := range sortedKeys(e.Type) {
		switch e.Type[path] {
		case "number":
			checks = append(checks, expect.IsNumber(path))
		case "string":
			checks = append(checks, expect.IsString(path))
		case "list":
			checks = append(checks, expect.IsList(path))
		default:
			return nil, fmt.Errorf("unknown type %q for %s", e.Type[path], path)
		}
	}

	for _, path := range e.NotEmpty {
		checks = append(checks, expect.NotEmpty(path))
	}

	for _, path := range sortedKeys(e.Equal) {
		checks = append(checks, expect.Equal(path, e.Equal[path]))
	}

	for _, path := range sortedKeys(e.EqualFold) {
		checks = append(checks, expect.EqualFold(path, e.EqualFold[path]))
	}

	for _, path := range sortedKeys(e.ContainsFold) {
		checks = append(checks, expect.ContainsFold(path, e.ContainsFold[path]))
	}

	for _, path := range sortedKeys(e.Matches) {
		checks = append(checks, expect.Matches(path, e.Matches[path]))
	}

	for _, path := range sortedKeys(e.GreaterThan) {
		checks = append(checks, expect.GreaterThan(path, e.GreaterThan[path]))
	}

	for _, path := range sortedKeys(e.AtLeast) {
		checks = append(checks, expect.AtLeast(path, e.AtLeast[path]))
	}

	for _, path := range sortedKeys(e.LessThan) {
		checks = append(checks, expect.LessThan(path, e.LessThan[path]))
	}

	for _, path := range sortedKeys(e.Each) {
		element := e.Each[path]

		nested, err := element.checks()
		if err != nil {
			return nil, err
		}

		checks = append(checks, expect.Each(path, nested...))
	}

	return checks, nil
}
