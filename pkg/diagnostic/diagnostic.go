// Package diagnostic converts API findings into editor diagnostics and
// renders them for the terminal, as JSON, or as SARIF.
package diagnostic

import (
	"strings"

	"github.com/impactlens/ilens/pkg/api"
)

const (
	Source         = "impactlens"
	defaultMessage = "Impactlens finding"
)

type Severity int

// LSP severity values.
const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "warning"
	}
}

// ParseSeverity maps an API severity. Unknown or empty values are warnings.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "critical", "high":
		return SeverityError
	case "info", "information":
		return SeverityInformation
	case "hint":
		return SeverityHint
	default:
		return SeverityWarning
	}
}

// Position is 0-based.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Diagnostic struct {
	File      string   `json:"file,omitempty"`
	Range     Range    `json:"range"`
	Severity  Severity `json:"severity"`
	Code      string   `json:"code,omitempty"`
	Message   string   `json:"message"`
	Source    string   `json:"source"`
	FindingID string   `json:"findingId,omitempty"`
	RuleID    string   `json:"ruleId,omitempty"`
}

func value(p *int) int {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}

func convertPosition(p *api.Position) (Position, bool) {
	if p == nil {
		return Position{}, false
	}
	return Position{Line: value(p.Line), Character: value(p.Character)}, true
}

// ConvertRange fills missing fields: no start means the top of the file and
// no end means a single character at the start.
func ConvertRange(r *api.Range) Range {
	if r == nil {
		return Range{End: Position{Character: 1}}
	}
	start, _ := convertPosition(r.Start)
	end, ok := convertPosition(r.End)
	if !ok {
		end = Position{Line: start.Line, Character: start.Character + 1}
	}
	return Range{Start: start, End: end}
}

// Convert maps one API diagnostic for file.
func Convert(file string, d *api.Diagnostic) *Diagnostic {
	msg := d.Message
	if strings.TrimSpace(msg) == "" {
		msg = defaultMessage
	}
	code := d.Code
	if code == "" {
		code = d.RuleID
	}
	if code == "" {
		code = d.FindingID
	}
	return &Diagnostic{
		File:      file,
		Range:     ConvertRange(d.Range),
		Severity:  ParseSeverity(d.Severity),
		Code:      code,
		Message:   msg,
		Source:    Source,
		FindingID: d.FindingID,
		RuleID:    d.RuleID,
	}
}

// ConvertAll maps every non-nil diagnostic, keeping the API order.
func ConvertAll(file string, diags []*api.Diagnostic) []*Diagnostic {
	arr := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d == nil {
			continue
		}
		arr = append(arr, Convert(file, d))
	}
	return arr
}

// CountBySeverity returns how many diagnostics have each severity.
func CountBySeverity(diags []*Diagnostic) map[Severity]int {
	m := make(map[Severity]int, 4) //nolint:mnd
	for _, d := range diags {
		m[d.Severity]++
	}
	return m
}
