// Command schema writes JSON schema of the pixelsocial configuration
package main

import (
	"encoding/json"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pixelsocial/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		lgr.Fatalf("failed to generate schema: %v", err)
	}
	schema.ID = "https://github.com/umputun/pixelsocial/pkg/config/config"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		lgr.Fatalf("failed to marshal schema: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		lgr.Fatalf("failed to write schema file: %v", err)
	}
	lgr.Printf("[INFO] schema written to %s", outputPath)
}
