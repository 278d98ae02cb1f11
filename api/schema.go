package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/kfglabs/directory/internal/apperror"
	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() {
	schemas = make(map[string]*jsonschema.Schema)

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		schemasErr = fmt.Errorf("read schemas dir: %w", err)
		return
	}
	for _, e := range entries {
		b, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			schemasErr = fmt.Errorf("read schema %s: %w", e.Name(), err)
			return
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			schemasErr = fmt.Errorf("compile schema %s: %w", e.Name(), err)
			return
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}
}

// validateBody checks a raw JSON document against a named embedded schema
// and reports violations as a single invalid-argument error.
func validateBody(ctx context.Context, name string, raw []byte) error {
	schemasOnce.Do(loadSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	rs, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema: %s", name)
	}

	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return apperror.Invalid("request body is not valid JSON")
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.Error())
		}
		return apperror.Invalid(strings.Join(msgs, "; "))
	}
	return nil
}

// validateQuery runs the loosely-typed query filters through the same schema
// machinery as request bodies.
func validateQuery(ctx context.Context, name string, filters map[string]any) error {
	raw, err := json.Marshal(filters)
	if err != nil {
		return apperror.Invalid("invalid query filters")
	}
	return validateBody(ctx, name, raw)
}
