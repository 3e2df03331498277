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

// Package report renders a run report for a terminal.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

//nolint:gochecknoglobals
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	colorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

const (
	iconPassed  = "✓"
	iconFailed  = "✗"
	iconBlocked = "⊘"

	moduleWidth = 12
)

// styles are bound to a renderer so color detection follows the output.
type styles struct {
	title   lipgloss.Style
	module  lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	blocked lipgloss.Style
	muted   lipgloss.Style
	detail  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true),
		module:  r.NewStyle().Bold(true).Width(moduleWidth),
		passed:  r.NewStyle().Foreground(colorSuccess),
		failed:  r.NewStyle().Foreground(colorError).Bold(true),
		blocked: r.NewStyle().Foreground(colorWarning),
		muted:   r.NewStyle().Foreground(colorMuted),
		detail:  r.NewStyle().PaddingLeft(6),
	}
}

// Printer writes report summaries.
type Printer struct {
	out     io.Writer
	styles  styles
	verbose bool
}

// Option customizes a Printer.
type Option func(*Printer)

// WithVerbose lists passed cases too, not just problems.
func WithVerbose(verbose bool) Option {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// New returns a printer writing to out, styled for whatever out is.
func New(out io.Writer, options ...Option) *Printer {
	p := &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}

	for _, o := range options {
		o(p)
	}

	return p
}

// Print writes one line per module followed by the details of every failed
// or blocked case, then an overall verdict.
func (p *Printer) Print(report *scenario.Report) error {
	_, err := io.WriteString(p.out, p.Render(report))

	return err
}

// Render returns what Print writes.
func (p *Printer) Render(report *scenario.Report) string {
	var b strings.Builder

	b.WriteString(p.styles.title.Render("GreenMarket acceptance run"))
	b.WriteString("\n\n")

	for i := range report.Modules {
		p.renderModule(&b, &report.Modules[i])
	}

	b.WriteString("\n")
	b.WriteString(p.verdict(report))
	b.WriteString("\n")

	return b.String()
}

func (p *Printer) renderModule(b *strings.Builder, m *scenario.ModuleReport) {
	icon := p.styles.passed.Render(iconPassed)

	switch {
	case m.Count(scenario.Failed) > 0:
		icon = p.styles.failed.Render(iconFailed)
	case m.Count(scenario.Blocked) > 0:
		icon = p.styles.blocked.Render(iconBlocked)
	}

	fmt.Fprintf(b, "%s %s %s %s %s %s\n",
		icon,
		p.styles.module.Render(m.Name),
		p.styles.passed.Render(fmt.Sprintf("%d passed", m.Count(scenario.Passed))),
		p.count(p.styles.failed, m.Count(scenario.Failed), "failed"),
		p.count(p.styles.blocked, m.Count(scenario.Blocked), "blocked"),
		p.styles.muted.Render(duration(m.Duration)),
	)

	for i := range m.Cases {
		p.renderCase(b, &m.Cases[i])
	}
}

func (p *Printer) count(style lipgloss.Style, n int, label string) string {
	text := fmt.Sprintf("%d %s", n, label)

	if n == 0 {
		return p.styles.muted.Render(text)
	}

	return style.Render(text)
}

func (p *Printer) renderCase(b *strings.Builder, c *scenario.CaseResult) {
	var icon string

	switch c.State {
	case scenario.Passed:
		if !p.verbose {
			return
		}

		icon = p.styles.passed.Render(iconPassed)
	case scenario.Failed:
		icon = p.styles.failed.Render(iconFailed)
	case scenario.Blocked:
		icon = p.styles.blocked.Render(iconBlocked)
	case scenario.Pending, scenario.Running:
		icon = p.styles.muted.Render("·")
	}

	fmt.Fprintf(b, "    %s %s %s", icon, c.ID, c.Description)

	if c.StatusCode != 0 {
		b.WriteString(p.styles.muted.Render(fmt.Sprintf(" [%d in %s]", c.StatusCode, duration(c.Elapsed))))
	}

	b.WriteString("\n")

	for _, line := range Details(c) {
		b.WriteString(p.styles.detail.Render(line))
		b.WriteString("\n")
	}
}

func (p *Printer) verdict(report *scenario.Report) string {
	passed := report.Count(scenario.Passed)
	failed := report.Count(scenario.Failed)
	blocked := report.Count(scenario.Blocked)
	total := passed + failed + blocked

	summary := fmt.Sprintf("%d/%d passed, %d failed, %d blocked in %s", passed, total, failed, blocked, duration(report.Duration))

	if report.OK() {
		return p.styles.passed.Bold(true).Render("PASS " + summary)
	}

	return p.styles.failed.Render("FAIL " + summary)
}

// Details explains why a case did not pass, one line per fact, with expected
// and actual values broken out where the error carries them.
func Details(c *scenario.CaseResult) []string {
	if c.Err == nil {
		return nil
	}

	var lines []string

	var (
		status    *expect.UnexpectedStatus
		assertion *expect.AssertionFailure
		violation *expect.SchemaViolation
		blocked   *scenario.BlockedDependency
		transport *client.TransportError
	)

	switch {
	case errors.As(c.Err, &status):
		lines = append(lines,
			"unexpected status code",
			fmt.Sprintf("expected: %s", joinInts(status.Expected)),
			fmt.Sprintf("actual:   %d", status.Actual),
		)

		if body := strings.TrimSpace(status.Body); body != "" {
			lines = append(lines, "body:     "+truncate(body, 200))
		}
	case errors.As(c.Err, &assertion):
		lines = append(lines,
			"assertion failed at "+assertion.Path,
			"expected: "+assertion.Expected,
			fmt.Sprintf("actual:   %v", assertion.Actual),
		)
	case errors.As(c.Err, &violation):
		lines = append(lines,
			"schema violation at "+violation.Path,
			"reason:   "+violation.Reason,
		)
	case errors.As(c.Err, &blocked):
		lines = append(lines, "blocked, missing "+strings.Join(blocked.Missing, ", "))
	case errors.As(c.Err, &transport):
		lines = append(lines,
			fmt.Sprintf("transport error: %s %s", transport.Method, transport.URL),
			fmt.Sprintf("cause:    %v", transport.Err),
		)
	default:
		lines = append(lines, c.Err.Error())
	}

	if c.TraceID != "" {
		lines = append(lines, "trace:    "+c.TraceID)
	}

	return lines
}

func joinInts(values []int) string {
	out := make([]string, len(values))

	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}

	return strings.Join(out, " or ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "..."
}

func duration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
