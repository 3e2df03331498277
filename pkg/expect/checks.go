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
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
	"github.com/spjmurray/go-util/pkg/set"
)

// statusCheck passes when the status code is one of an allowed set.
type statusCheck struct {
	allowed set.Set[int]
}

// Status passes when the status code is any of codes.
func Status(codes ...int) Check {
	return statusCheck{allowed: set.New[int](codes...)}
}

func (c statusCheck) codes() []int {
	var codes []int

	for code := range c.allowed.All() {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	return codes
}

func (c statusCheck) String() string {
	codes := c.codes()
	out := make([]string, len(codes))

	for i, code := range codes {
		out[i] = strconv.Itoa(code)
	}

	return "status in [" + strings.Join(out, ", ") + "]"
}

func (c statusCheck) check(s subject) error {
	codes := c.codes()

	if slices.Contains(codes, s.response.StatusCode) {
		return nil
	}

	return &UnexpectedStatus{Expected: codes, Actual: s.response.StatusCode, Body: string(s.response.Raw)}
}

// contentTypeCheck compares the response media type.
type contentTypeCheck struct {
	mediaType string
}

// ContentType passes when the response media type (parameters ignored) is mediaType.
func ContentType(mediaType string) Check {
	return contentTypeCheck{mediaType: strings.ToLower(mediaType)}
}

func (c contentTypeCheck) String() string {
	return "content type is " + c.mediaType
}

func (c contentTypeCheck) check(s subject) error {
	if strings.EqualFold(s.response.ContentType, c.mediaType) {
		return nil
	}

	return &AssertionFailure{Path: "Content-Type", Expected: c.mediaType, Actual: s.response.ContentType}
}

// elapsedCheck bounds the response time. A slow response is still fully read
// and evaluated, it just fails here.
type elapsedCheck struct {
	limit time.Duration
}

// MaxElapsed passes when the round trip took no longer than limit.
func MaxElapsed(limit time.Duration) Check {
	return elapsedCheck{limit: limit}
}

func (c elapsedCheck) String() string {
	return fmt.Sprintf("responds within %s", c.limit)
}

func (c elapsedCheck) check(s subject) error {
	if s.response.Elapsed <= c.limit {
		return nil
	}

	return &AssertionFailure{Path: "elapsed", Expected: fmt.Sprintf("<= %dms", c.limit.Milliseconds()), Actual: fmt.Sprintf("%dms", s.response.ElapsedMillis())}
}

// presenceCheck tests whether a field exists.
type presenceCheck struct {
	path    string
	present bool
}

// Present passes when path holds a non-null value.
func Present(path string) Check {
	return presenceCheck{path: path, present: true}
}

// Absent passes when path does not exist. A key holding JSON null still
// exists and fails. A body that is not JSON has no fields, so Absent passes
// on it.
func Absent(path string) Check {
	return presenceCheck{path: path, present: false}
}

func (c presenceCheck) String() string {
	if c.present {
		return c.path + " is present"
	}

	return c.path + " is absent"
}

func (c presenceCheck) check(s subject) error {
	if !c.present {
		if s.body == nil {
			return nil
		}

		value, found, _ := s.lookup(c.path)
		if found {
			if value == nil {
				value = "null"
			}

			return &AssertionFailure{Path: s.full(c.path), Expected: "no such field", Actual: value}
		}

		return nil
	}

	_, err := s.require(c.path)

	return err
}

// valueKind restricts the JSON type a value check accepts.
type valueKind int

const (
	kindAny valueKind = iota
	kindNumber
	kindString
	kindList
)

func (k valueKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindList:
		return "list"
	case kindAny:
	}

	return "any"
}

// valueCheck resolves a path, checks its JSON type and hands the value to a
// gomega matcher. Numbers are normalized to float64 first.
type valueCheck struct {
	path        string
	kind        valueKind
	description string
	matcher     types.GomegaMatcher
}

func (c valueCheck) String() string {
	return c.path + " " + c.description
}

func (c valueCheck) check(s subject) error {
	value, err := s.require(c.path)
	if err != nil {
		return err
	}

	actual := value

	switch c.kind {
	case kindNumber:
		f, ok := toFloat(value)
		if !ok {
			return &SchemaViolation{Path: s.full(c.path), Reason: "expected a number, got " + jsonType(value)}
		}

		actual = f
	case kindString:
		if _, ok := value.(string); !ok {
			return &SchemaViolation{Path: s.full(c.path), Reason: "expected a string, got " + jsonType(value)}
		}
	case kindList:
		if _, ok := value.([]any); !ok {
			return &SchemaViolation{Path: s.full(c.path), Reason: "expected a list, got " + jsonType(value)}
		}
	case kindAny:
	}

	if c.matcher == nil {
		return nil
	}

	ok, err := c.matcher.Match(actual)
	if err != nil || !ok {
		return &AssertionFailure{Path: s.full(c.path), Expected: c.description, Actual: value, Err: err}
	}

	return nil
}

// That applies an arbitrary gomega matcher to the value at path.
func That(path string, matcher types.GomegaMatcher) Check {
	return valueCheck{path: path, kind: kindAny, description: fmt.Sprintf("satisfies %T", matcher), matcher: matcher}
}

// Equal passes when the value at path equals expected. Numbers compare by
// value regardless of Go type.
func Equal(path string, expected any) Check {
	if f, ok := toFloat(expected); ok {
		return valueCheck{path: path, kind: kindNumber, description: fmt.Sprintf("== %v", expected), matcher: gomega.BeNumerically("==", f)}
	}

	return valueCheck{path: path, kind: kindAny, description: fmt.Sprintf("== %q", fmt.Sprint(expected)), matcher: gomega.Equal(expected)}
}

// EqualFold passes when the string at path equals expected ignoring case.
func EqualFold(path, expected string) Check {
	return valueCheck{
		path:        path,
		kind:        kindString,
		description: fmt.Sprintf("equals %q ignoring case", expected),
		matcher:     gomega.WithTransform(strings.ToLower, gomega.Equal(strings.ToLower(expected))),
	}
}

// ContainsFold passes when the string at path contains substr ignoring case.
// Error message fields are checked this way.
func ContainsFold(path, substr string) Check {
	return valueCheck{
		path:        path,
		kind:        kindString,
		description: fmt.Sprintf("contains %q ignoring case", substr),
		matcher:     gomega.WithTransform(strings.ToLower, gomega.ContainSubstring(strings.ToLower(substr))),
	}
}

// Matches passes when the string at path matches the regular expression.
func Matches(path, pattern string) Check {
	return valueCheck{path: path, kind: kindString, description: fmt.Sprintf("matches /%s/", pattern), matcher: gomega.MatchRegexp(pattern)}
}

// IsNumber passes when path holds a JSON number.
func IsNumber(path string) Check {
	return valueCheck{path: path, kind: kindNumber, description: "is a number"}
}

// IsString passes when path holds a JSON string.
func IsString(path string) Check {
	return valueCheck{path: path, kind: kindString, description: "is a string"}
}

// IsList passes when path holds a JSON array.
func IsList(path string) Check {
	return valueCheck{path: path, kind: kindList, description: "is a list"}
}

// NotEmpty passes when path holds a JSON array with at least one element.
func NotEmpty(path string) Check {
	return valueCheck{path: path, kind: kindList, description: "is not empty", matcher: gomega.Not(gomega.BeEmpty())}
}

// GreaterThan passes when the number at path is > bound.
func GreaterThan(path string, bound float64) Check {
	return valueCheck{path: path, kind: kindNumber, description: fmt.Sprintf("> %v", bound), matcher: gomega.BeNumerically(">", bound)}
}

// AtLeast passes when the number at path is >= bound.
func AtLeast(path string, bound float64) Check {
	return valueCheck{path: path, kind: kindNumber, description: fmt.Sprintf(">= %v", bound), matcher: gomega.BeNumerically(">=", bound)}
}

// LessThan passes when the number at path is < bound.
func LessThan(path string, bound float64) Check {
	return valueCheck{path: path, kind: kindNumber, description: fmt.Sprintf("< %v", bound), matcher: gomega.BeNumerically("<", bound)}
}

// eachCheck applies checks to every element of a list.
type eachCheck struct {
	path   string
	checks []Check
}

// Each applies checks to every element of the list at path, with paths
// relative to the element. An empty list passes; pair with NotEmpty.
func Each(path string, checks ...Check) Check {
	return eachCheck{path: path, checks: checks}
}

func (c eachCheck) String() string {
	descriptions := make([]string, len(c.checks))

	for i, check := range c.checks {
		descriptions[i] = check.String()
	}

	path := c.path
	if path == "" {
		path = "$"
	}

	return fmt.Sprintf("each of %s: %s", path, strings.Join(descriptions, ", "))
}

func (c eachCheck) check(s subject) error {
	value, err := s.require(c.path)
	if err != nil {
		return err
	}

	list, ok := value.([]any)
	if !ok {
		return &SchemaViolation{Path: s.full(c.path), Reason: "expected a list, got " + jsonType(value)}
	}

	base := s.full(c.path)
	if base == "$" {
		base = ""
	}

	for i, element := range list {
		child := subject{
			response: s.response,
			body:     gabs.Wrap(element),
			prefix:   fmt.Sprintf("%s[%d].", base, i),
		}

		for _, check := range c.checks {
			if err := check.check(child); err != nil {
				return err
			}
		}
	}

	return nil
}
