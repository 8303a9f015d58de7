package protocol

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// analysisSchemaURL is the resource name the analysis payload schema is
// registered under in the compiler.
const analysisSchemaURL = "analysis.json"

// reflectAnalysisSchema derives the payload schema from AnalysisFields so the
// struct tags stay the single source of truth. Every field is required and
// must be a string; extra fields are tolerated.
func reflectAnalysisSchema() *invopop.Schema {
	r := &invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	return r.Reflect(&AnalysisFields{})
}

// compileAnalysisSchema compiles the reflected schema for validation.
func compileAnalysisSchema() (*jsonschema.Schema, error) {
	// Convert to JSON and back to get a clean map[string]any
	schemaJSON, err := json.Marshal(reflectAnalysisSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling analysis schema: %w", err)
	}

	var schemaValue any
	if err := json.Unmarshal(schemaJSON, &schemaValue); err != nil {
		return nil, fmt.Errorf("unmarshaling analysis schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(analysisSchemaURL, schemaValue); err != nil {
		return nil, fmt.Errorf("adding analysis schema resource: %w", err)
	}

	compiled, err := compiler.Compile(analysisSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling analysis schema: %w", err)
	}
	return compiled, nil
}
