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
	"fmt"
	"slices"
	"strings"
)

// Validate checks the plan can be run: names and IDs are unique, orders are
// unique within a module, dependencies exist and are acyclic, and every
// artifact a case uses is produced by an earlier case in the same module, by
// a module it depends on, or is a plan variable.
func (p *Plan) Validate() error {
	_, err := p.schedule()

	return err
}

// schedule validates the plan and returns modules in dependency order, ties
// broken by declaration order.
func (p *Plan) schedule() ([]*Module, error) {
	modules := map[string]*Module{}
	ids := map[string]string{}

	for i := range p.Modules {
		m := &p.Modules[i]

		if m.Name == "" {
			return nil, fmt.Errorf("%w: module %d has no name", ErrInvalidPlan, i)
		}

		if _, ok := modules[m.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate module %s", ErrInvalidPlan, m.Name)
		}

		modules[m.Name] = m

		orders := map[int]string{}

		for _, c := range m.Cases {
			if c.ID == "" {
				return nil, fmt.Errorf("%w: module %s has a case with no id", ErrInvalidPlan, m.Name)
			}

			if other, ok := ids[c.ID]; ok {
				return nil, fmt.Errorf("%w: case %s declared in modules %s and %s", ErrInvalidPlan, c.ID, other, m.Name)
			}

			ids[c.ID] = m.Name

			if other, ok := orders[c.Order]; ok {
				return nil, fmt.Errorf("%w: cases %s and %s in module %s share order %d", ErrInvalidPlan, other, c.ID, m.Name, c.Order)
			}

			orders[c.Order] = c.ID

			if c.Request.Method == "" || c.Request.Path == "" {
				return nil, fmt.Errorf("%w: case %s has no method or path", ErrInvalidPlan, c.ID)
			}
		}
	}

	for _, m := range modules {
		for _, dep := range m.DependsOn {
			if dep == m.Name {
				return nil, fmt.Errorf("%w: module %s depends on itself", ErrInvalidPlan, m.Name)
			}

			if _, ok := modules[dep]; !ok {
				return nil, fmt.Errorf("%w: module %s depends on unknown module %s", ErrInvalidPlan, m.Name, dep)
			}
		}
	}

	ordered := make([]*Module, 0, len(p.Modules))
	placed := map[string]bool{}

	for len(ordered) < len(p.Modules) {
		progress := false

		for i := range p.Modules {
			m := &p.Modules[i]

			if placed[m.Name] || slices.ContainsFunc(m.DependsOn, func(dep string) bool { return !placed[dep] }) {
				continue
			}

			placed[m.Name] = true
			ordered = append(ordered, m)
			progress = true
		}

		if !progress {
			var stuck []string

			for i := range p.Modules {
				if !placed[p.Modules[i].Name] {
					stuck = append(stuck, p.Modules[i].Name)
				}
			}

			return nil, fmt.Errorf("%w: dependency cycle between modules %s", ErrInvalidPlan, strings.Join(stuck, ", "))
		}
	}

	if err := p.checkArtifacts(modules); err != nil {
		return nil, err
	}

	return ordered, nil
}

// checkArtifacts ensures every case only uses artifacts it can see. A bearer
// case also needs a token capture earlier in its module or in a module it
// depends on.
func (p *Plan) checkArtifacts(modules map[string]*Module) error {
	for i := range p.Modules {
		m := &p.Modules[i]

		available := map[string]bool{}

		for name := range p.Variables {
			available[name] = true
		}

		token := false

		for dep := range dependencies(m, modules) {
			for _, c := range modules[dep].Cases {
				for _, capture := range c.Capture {
					if capture.Sink != SinkModule {
						available[capture.Name] = true
					}

					if capture.Sink == SinkToken {
						token = true
					}
				}
			}
		}

		for _, c := range sortedCases(m.Cases) {
			for _, name := range c.uses() {
				if !available[name] {
					return fmt.Errorf("%w: case %s uses artifact %q that nothing before it captures", ErrInvalidPlan, c.ID, name)
				}
			}

			if c.Auth == AuthBearer && !token {
				return fmt.Errorf("%w: case %s uses bearer auth but no case before it captures a token", ErrInvalidPlan, c.ID)
			}

			for _, capture := range c.Capture {
				if capture.Name == "" || capture.Path == "" {
					return fmt.Errorf("%w: case %s has a capture with no name or path", ErrInvalidPlan, c.ID)
				}

				available[capture.Name] = true

				if capture.Sink == SinkToken {
					token = true
				}
			}
		}
	}

	return nil
}

// dependencies returns the transitive dependencies of a module.
func dependencies(m *Module, modules map[string]*Module) map[string]bool {
	seen := map[string]bool{}
	queue := slices.Clone(m.DependsOn)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if seen[name] {
			continue
		}

		seen[name] = true

		queue = append(queue, modules[name].DependsOn...)
	}

	return seen
}

// uses returns every artifact the case reads: declared requirements, body
// artifacts and template references in the path, query and headers.
func (c *Case) uses() []string {
	names := slices.Clone(c.Requires)

	names = append(names, c.Request.BodyUses...)

	names = append(names, References(c.Request.Path)...)

	for _, values := range c.Request.Query {
		for _, value := range values {
			names = append(names, References(value)...)
		}
	}

	for _, value := range c.Request.Headers {
		names = append(names, References(value)...)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// sortedCases returns a copy of cases in ascending order.
func sortedCases(cases []Case) []Case {
	sorted := slices.Clone(cases)

	slices.SortStableFunc(sorted, func(a, b Case) int {
		return a.Order - b.Order
	})

	return sorted
}
