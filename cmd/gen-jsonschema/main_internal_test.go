package main

import (
	"encoding/json"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/config"
)

type schemaDef struct {
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

func Test_marshal(t *testing.T) {
	t.Parallel()
	b, err := marshal(&config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	s := struct {
		Defs map[string]*schemaDef `json:"$defs"`
	}{}
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name     string
		def      string
		props    []string
		required []string
	}{
		{
			name: "config",
			def:  "Config",
			props: []string{
				"cli_path", "debounce_ms", "fault_templates", "ignore", "languages",
				"profile", "subscription_check_interval", "version",
			},
		},
		{
			name:     "ignore",
			def:      "Ignore",
			props:    []string{"pattern", "pattern_format"},
			required: []string{"pattern", "pattern_format"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			def, ok := s.Defs[d.def]
			if !ok {
				t.Fatalf("%s isn't defined", d.def)
			}
			props := make([]string, 0, len(def.Properties))
			for k := range def.Properties {
				props = append(props, k)
			}
			sort.Strings(props)
			if diff := cmp.Diff(d.props, props); diff != "" {
				t.Errorf("properties: %s", diff)
			}
			required := slices.Clone(def.Required)
			sort.Strings(required)
			if diff := cmp.Diff(d.required, required); diff != "" {
				t.Errorf("required: %s", diff)
			}
		})
	}
}
