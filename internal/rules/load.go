package rules

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML rule file and applies it over the built-in rule set.
// An empty path returns the defaults.
func LoadFile(path string) (*RuleSet, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing rules file %q: %w", path, err)
	}

	rs, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}

	return rs, nil
}

// Decode applies the untyped values over a copy of the defaults. Sections absent
// from raw keep their defaults, present lists replace the default lists entirely.
func Decode(raw map[string]any) (*RuleSet, error) {
	rs := Default()
	if len(raw) == 0 {
		return rs, nil
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           rs,
		TagName:          "mapstructure",
		ZeroFields:       true,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	if _, ok := raw["version"]; !ok {
		rs.Version = "custom"
	}

	return rs, nil
}

// YAML renders the rule set in the format accepted by LoadFile.
func (r *RuleSet) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
