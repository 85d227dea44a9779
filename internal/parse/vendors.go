package parse

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed vendors.json
var vendorConfigJSON []byte

//go:embed vendors_schema.json
var vendorSchemaJSON []byte

// VendorPattern maps a recognizable text pattern to a canonical
// merchant name. Patterns are matched case-insensitively against the
// header window of the document text.
type VendorPattern struct {
	re   *regexp.Regexp
	Name string
}

// AliasRule resolves text fragments that systematically defeat the
// generic matching tiers to a set of canonical entity names.
type AliasRule struct {
	Contains  []string
	Canonical []string
}

// VendorTable is the static, priority-ordered vendor configuration.
// Utilities, banks, and service providers come before general
// retailers: bills carry boilerplate that can false-match a retailer
// pattern, so the more specific entries must win. The order of the
// embedded config is preserved exactly.
type VendorTable struct {
	vendors []VendorPattern
	aliases []AliasRule
}

type vendorConfig struct {
	Vendors []struct {
		Pattern string `json:"pattern"`
		Name    string `json:"name"`
	} `json:"vendors"`
	Aliases []struct {
		Contains  []string `json:"contains"`
		Canonical []string `json:"canonical"`
	} `json:"aliases"`
}

// LoadVendorTable validates the embedded vendor config against its
// schema, compiles the patterns, and returns the immutable table.
// Called once at startup.
func LoadVendorTable() (*VendorTable, error) {
	if err := validateVendorConfig(vendorConfigJSON); err != nil {
		return nil, fmt.Errorf("vendor config: %w", err)
	}

	var cfg vendorConfig
	if err := json.Unmarshal(vendorConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("vendor config: decode: %w", err)
	}

	t := &VendorTable{
		vendors: make([]VendorPattern, 0, len(cfg.Vendors)),
		aliases: make([]AliasRule, 0, len(cfg.Aliases)),
	}
	for _, v := range cfg.Vendors {
		re, err := regexp.Compile(`(?i)` + v.Pattern)
		if err != nil {
			return nil, fmt.Errorf("vendor config: compile %q: %w", v.Pattern, err)
		}
		t.vendors = append(t.vendors, VendorPattern{re: re, Name: v.Name})
	}
	for _, a := range cfg.Aliases {
		t.aliases = append(t.aliases, AliasRule{Contains: a.Contains, Canonical: a.Canonical})
	}
	return t, nil
}

// Match scans the header text against the table in priority order and
// returns the canonical name of the first matching vendor.
func (t *VendorTable) Match(header string) (string, bool) {
	for _, v := range t.vendors {
		if v.re.MatchString(header) {
			return v.Name, true
		}
	}
	return "", false
}

// Aliases returns the configured alias rules in order.
func (t *VendorTable) Aliases() []AliasRule {
	return t.aliases
}

func validateVendorConfig(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("vendors_schema.json", bytes.NewReader(vendorSchemaJSON)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("vendors_schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
