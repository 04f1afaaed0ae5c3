package api

// Position is a 0-based line/character offset as sent by the API.
// Pointers distinguish an absent field from a zero value.
type Position struct {
	Line      *int `json:"line,omitempty"`
	Character *int `json:"character,omitempty"`
}

type Range struct {
	Start *Position `json:"start,omitempty"`
	End   *Position `json:"end,omitempty"`
}

// Diagnostic is a finding as returned by POST /diagnostics.
type Diagnostic struct {
	Range     *Range `json:"range,omitempty"`
	Severity  string `json:"severity,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	RuleID    string `json:"ruleId,omitempty"`
	FindingID string `json:"findingId,omitempty"`
}

type DiagnosticsRequest struct {
	Source   string `json:"source"`
	Language string `json:"language"`
	Profile  string `json:"profile,omitempty"`
	File     string `json:"file,omitempty"`
}

type DiagnosticsResponse struct {
	Diagnostics []*Diagnostic `json:"diagnostics"`
	Impacts     []*Impact     `json:"impacts,omitempty"`
	Centrality  *float64      `json:"centrality,omitempty"`
	Insights    []*Insight    `json:"insights,omitempty"`
}

// Impact describes who reaches a function and what was found about it.
type Impact struct {
	FunctionName string     `json:"functionName"`
	File         string     `json:"file,omitempty"`
	Line         int        `json:"line,omitempty"`
	Callers      []*Caller  `json:"callers,omitempty"`
	Routes       []*Route   `json:"routes,omitempty"`
	Findings     []*Insight `json:"findings,omitempty"`
}

type Caller struct {
	Name string `json:"name"`
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

type Route struct {
	Method string `json:"method,omitempty"`
	Path   string `json:"path"`
}

// Insight is a named issue attached to a function or a file.
type Insight struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Severity string `json:"severity,omitempty"`
	Line     int    `json:"line,omitempty"`
	Link     string `json:"link,omitempty"`
}

type CodeActionsRequest struct {
	Source    string `json:"source"`
	FindingID string `json:"findingId"`
	Language  string `json:"language,omitempty"`
}

type CodeActionsResponse struct {
	Actions []*CodeAction `json:"actions"`
}

type CodeAction struct {
	Title string      `json:"title"`
	Edits []*TextEdit `json:"edits"`
}

type TextEdit struct {
	Range   *Range `json:"range"`
	NewText string `json:"newText"`
}

// SubscriptionStatus is returned by GET /subscription/status.
type SubscriptionStatus struct {
	Tier               string `json:"tier"`
	Status             string `json:"status"`
	TrialDaysRemaining *int   `json:"trialDaysRemaining,omitempty"`
	UpgradeURL         string `json:"upgradeUrl,omitempty"`
}
