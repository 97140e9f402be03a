package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Schema defines sections and enums, values are checked against them.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Defs map[string]struct {
			Properties map[string]struct {
				Enum []any `json:"enum"`
			} `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}
	if len(schema.Defs) == 0 {
		return fmt.Errorf("embedded schema has no definitions")
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	enums := []struct{ def, prop, val string }{
		{def: "FeedConfig", prop: "source", val: cfg.Feed.Source},
	}
	for _, e := range enums {
		allowed := schema.Defs[e.def].Properties[e.prop].Enum
		if len(allowed) == 0 {
			continue
		}
		if !containsValue(allowed, e.val) {
			return fmt.Errorf("%s.%s: value %q not in %v", e.def, e.prop, e.val, allowed)
		}
	}
	return nil
}

func containsValue(list []any, val string) bool {
	for _, v := range list {
		if s, ok := v.(string); ok && s == val {
			return true
		}
	}
	return false
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Feed.BatchSize == 0 {
		return fmt.Errorf("feed.batch_size is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
