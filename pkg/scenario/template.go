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
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Expand replaces every {{name}} in s with the artifact of that name.
// Inserted values are copied verbatim and never expanded again.
func Expand(s string, vars Vars) (string, error) {
	return expand(s, vars, nil)
}

// ExpandPath is Expand for URL paths, every inserted value is escaped as a
// single path segment.
func ExpandPath(s string, vars Vars) (string, error) {
	return expand(s, vars, url.PathEscape)
}

func expand(s string, vars Vars, escape func(string) string) (string, error) {
	var out strings.Builder

	rest := s

	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			break
		}

		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return "", fmt.Errorf("%w: unterminated expression at position %d in %q", ErrTemplate, len(s)-len(rest)+start, s)
		}

		end += start + 2

		name := strings.TrimSpace(rest[start+2 : end-2])

		value, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: unresolved artifact %q", ErrTemplate, name)
		}

		if escape != nil {
			value = escape(value)
		}

		out.WriteString(rest[:start])
		out.WriteString(value)

		rest = rest[end:]
	}

	out.WriteString(rest)

	return out.String(), nil
}

// References returns the artifact names used by s, in order of appearance.
// Malformed expressions are ignored, Expand reports them.
func References(s string) []string {
	var names []string

	for {
		start := strings.Index(s, "{{")
		if start == -1 {
			return names
		}

		end := strings.Index(s[start:], "}}")
		if end == -1 {
			return names
		}

		names = append(names, strings.TrimSpace(s[start+2:start+end]))
		s = s[start+end+2:]
	}
}

func expandQuery(query url.Values, vars Vars) (url.Values, error) {
	if len(query) == 0 {
		return nil, nil
	}

	out := make(url.Values, len(query))

	for key, values := range query {
		for _, value := range values {
			expanded, err := Expand(value, vars)
			if err != nil {
				return nil, err
			}

			out.Add(key, expanded)
		}
	}

	return out, nil
}

func expandHeaders(headers map[string]string, vars Vars) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	out := maps.Clone(headers)

	for name, value := range out {
		expanded, err := Expand(value, vars)
		if err != nil {
			return nil, err
		}

		out[name] = expanded
	}

	return out, nil
}

// TemplateBody sends body with every string inside it expanded. Maps and
// lists, as decoded from YAML or JSON, are walked recursively. The artifact
// names the body refers to are returned alongside, for Request.BodyUses.
func TemplateBody(body any) (BodyFunc, []string) {
	build := func(vars Vars) (any, error) {
		return expandValue(body, vars)
	}

	return build, bodyReferences(body)
}

func bodyReferences(value any) []string {
	switch v := value.(type) {
	case string:
		return References(v)
	case map[string]any:
		var names []string

		for _, element := range v {
			names = append(names, bodyReferences(element)...)
		}

		slices.Sort(names)

		return slices.Compact(names)
	case []any:
		var names []string

		for _, element := range v {
			names = append(names, bodyReferences(element)...)
		}

		slices.Sort(names)

		return slices.Compact(names)
	}

	return nil
}

func expandValue(value any, vars Vars) (any, error) {
	switch v := value.(type) {
	case string:
		return Expand(v, vars)
	case map[string]any:
		out := make(map[string]any, len(v))

		for key, element := range v {
			expanded, err := expandValue(element, vars)
			if err != nil {
				return nil, err
			}

			out[key] = expanded
		}

		return out, nil
	case []any:
		out := make([]any, len(v))

		for i, element := range v {
			expanded, err := expandValue(element, vars)
			if err != nil {
				return nil, err
			}

			out[i] = expanded
		}

		return out, nil
	}

	return value, nil
}
