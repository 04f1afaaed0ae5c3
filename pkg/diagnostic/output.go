package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/sarif"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	File        string        `json:"file"`
	Diagnostics []*Diagnostic `json:"diagnostics"`
	Error       string        `json:"error,omitempty"`
}

type colorFunc func(a ...any) string

// Printer writes results in one of the supported formats.
type Printer struct {
	out     io.Writer
	red     colorFunc
	yellow  colorFunc
	cyan    colorFunc
	faint   colorFunc
	version string
}

func NewPrinter(out io.Writer, version string) *Printer {
	return &Printer{
		out:     out,
		red:     color.New(color.FgRed).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		faint:   color.New(color.Faint).SprintFunc(),
		version: version,
	}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	switch format {
	case "", FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

func (p *Printer) Print(format string, results []*FileResult) error {
	switch format {
	case "", FormatText:
		p.printText(results)
		return nil
	case FormatJSON:
		return p.printJSON(results)
	case FormatSARIF:
		return p.printSARIF(results)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (p *Printer) label(s Severity) string {
	switch s {
	case SeverityError:
		return p.red("ERROR")
	case SeverityWarning:
		return p.yellow("WARN")
	default:
		return p.cyan(fmt.Sprintf("%-5s", s.String()))
	}
}

func (p *Printer) printText(results []*FileResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(p.out, "%s %s\n%s\n", p.red("ERROR"), r.File, r.Error)
			continue
		}
		for _, d := range r.Diagnostics {
			code := ""
			if d.Code != "" {
				code = " " + p.faint("["+d.Code+"]")
			}
			// editors display 1-based positions
			fmt.Fprintf(p.out, "%s:%d:%d: %s %s%s\n",
				r.File, d.Range.Start.Line+1, d.Range.Start.Character+1,
				p.label(d.Severity), d.Message, code)
		}
	}
}

func (p *Printer) printJSON(results []*FileResult) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encode results as JSON: %w", err)
	}
	return nil
}

func sarifLevel(s Severity) string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// BuildSARIF converts results to a SARIF log. One rule is emitted per distinct code.
func BuildSARIF(results []*FileResult, version string) *sarif.Log {
	rules := map[string]string{}
	sarifResults := []sarif.Result{}
	notifications := []sarif.Notification{}
	for _, r := range results {
		location := sarif.Location{
			PhysicalLocation: sarif.PhysicalLocation{
				ArtifactLocation: sarif.ArtifactLocation{URI: r.File},
			},
		}
		if r.Error != "" {
			notifications = append(notifications, sarif.Notification{
				Level:     "error",
				Message:   sarif.Message{Text: r.Error},
				Locations: []sarif.Location{location},
			})
			continue
		}
		for _, d := range r.Diagnostics {
			ruleID := d.Code
			if ruleID == "" {
				ruleID = Source
			}
			if _, ok := rules[ruleID]; !ok {
				rules[ruleID] = d.Message
			}
			loc := location
			loc.PhysicalLocation.Region = sarif.Region{
				StartLine:   d.Range.Start.Line + 1,
				StartColumn: d.Range.Start.Character + 1,
				EndLine:     d.Range.End.Line + 1,
				EndColumn:   d.Range.End.Character + 1,
			}
			res := sarif.Result{
				RuleID:    ruleID,
				Level:     sarifLevel(d.Severity),
				Message:   sarif.Message{Text: d.Message},
				Locations: []sarif.Location{loc},
			}
			if d.FindingID != "" {
				res.PartialFingerprints = map[string]string{"findingId": d.FindingID}
			}
			sarifResults = append(sarifResults, res)
		}
	}

	ruleIDs := make([]string, 0, len(rules))
	for id := range rules {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	sarifRules := make([]sarif.Rule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		sarifRules = append(sarifRules, sarif.Rule{
			ID:               id,
			ShortDescription: sarif.Message{Text: rules[id]},
		})
	}

	return &sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "ilens",
						InformationURI: "https://impactlens.dev",
						Version:        version,
						Rules:          sarifRules,
					},
				},
				Results: sarifResults,
				Invocations: []sarif.Invocation{
					{
						ExecutionSuccessful:        len(notifications) == 0,
						ToolExecutionNotifications: notifications,
					},
				},
			},
		},
	}
}

func (p *Printer) printSARIF(results []*FileResult) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildSARIF(results, p.version)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}
