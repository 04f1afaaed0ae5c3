package diagnostic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/diagnostic"
)

func intP(i int) *int {
	return &i
}

func pos(line, char int) *api.Position {
	return &api.Position{Line: intP(line), Character: intP(char)}
}

func TestConvert(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name string
		in   *api.Diagnostic
		exp  *diagnostic.Diagnostic
	}{
		{
			name: "missing end range is a single character at the start",
			in: &api.Diagnostic{
				Range:     &api.Range{Start: pos(4, 7)},
				Severity:  "error",
				Message:   "blocking call in handler",
				RuleID:    "R100",
				FindingID: "F-1",
			},
			exp: &diagnostic.Diagnostic{
				File: "main.go",
				Range: diagnostic.Range{
					Start: diagnostic.Position{Line: 4, Character: 7},
					End:   diagnostic.Position{Line: 4, Character: 8},
				},
				Severity:  diagnostic.SeverityError,
				Code:      "R100",
				Message:   "blocking call in handler",
				Source:    "impactlens",
				FindingID: "F-1",
				RuleID:    "R100",
			},
		},
		{
			name: "full range is kept",
			in: &api.Diagnostic{
				Range:    &api.Range{Start: pos(1, 0), End: pos(2, 5)},
				Severity: "Information",
				Code:     "C1",
				Message:  "hot path",
			},
			exp: &diagnostic.Diagnostic{
				File: "main.go",
				Range: diagnostic.Range{
					Start: diagnostic.Position{Line: 1},
					End:   diagnostic.Position{Line: 2, Character: 5},
				},
				Severity: diagnostic.SeverityInformation,
				Code:     "C1",
				Message:  "hot path",
				Source:   "impactlens",
			},
		},
		{
			name: "everything missing",
			in:   &api.Diagnostic{},
			exp: &diagnostic.Diagnostic{
				File:     "main.go",
				Range:    diagnostic.Range{End: diagnostic.Position{Character: 1}},
				Severity: diagnostic.SeverityWarning,
				Message:  "Impactlens finding",
				Source:   "impactlens",
			},
		},
		{
			name: "negative positions clamp to zero and finding id is the code",
			in: &api.Diagnostic{
				Range:     &api.Range{Start: pos(-1, -3)},
				Severity:  "bogus",
				Message:   "x",
				FindingID: "F-2",
			},
			exp: &diagnostic.Diagnostic{
				File:      "main.go",
				Range:     diagnostic.Range{End: diagnostic.Position{Character: 1}},
				Severity:  diagnostic.SeverityWarning,
				Code:      "F-2",
				Message:   "x",
				Source:    "impactlens",
				FindingID: "F-2",
			},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(d.exp, diagnostic.Convert("main.go", d.in)); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestConvertAll_skipsNil(t *testing.T) {
	t.Parallel()
	got := diagnostic.ConvertAll("a.go", []*api.Diagnostic{nil, {Message: "m"}})
	if len(got) != 1 {
		t.Fatalf("wanted 1 diagnostic, got %d", len(got))
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	data := map[string]diagnostic.Severity{
		"error":       diagnostic.SeverityError,
		"ERROR":       diagnostic.SeverityError,
		"warning":     diagnostic.SeverityWarning,
		"":            diagnostic.SeverityWarning,
		"info":        diagnostic.SeverityInformation,
		"information": diagnostic.SeverityInformation,
		"hint":        diagnostic.SeverityHint,
	}
	for in, exp := range data {
		if got := diagnostic.ParseSeverity(in); got != exp {
			t.Errorf("ParseSeverity(%q): wanted %v, got %v", in, exp, got)
		}
	}
}
