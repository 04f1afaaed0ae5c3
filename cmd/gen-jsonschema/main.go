package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/impactlens/ilens/pkg/config"
	"github.com/invopop/jsonschema"
)

func main() {
	if err := core(); err != nil {
		log.Fatal(err)
	}
}

func core() error {
	return gen(&config.Config{}, "json-schema/ilens.json")
}

// marshal reflects input with its json tags. They carry the same names as the
// yaml tags and mark optional fields with omitempty.
func marshal(input any) ([]byte, error) {
	s := jsonschema.Reflect(input)
	s.Title = "ilens configuration"
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema as JSON: %w", err)
	}
	return []byte(strings.ReplaceAll(string(b), "http://json-schema.org", "https://json-schema.org") + "\n"), nil
}

func gen(input any, p string) error {
	b, err := marshal(input)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create a directory for %s: %w", p, err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil { //nolint:gosec,mnd
		return fmt.Errorf("write JSON Schema to %s: %w", p, err)
	}
	return nil
}
