// CUE schema validation code
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var embeddedSchema []byte

// Schema returns the embedded CUE schema.
func Schema() []byte {
	return embeddedSchema
}

// ValidateWithCue validates YAML configuration data against the #Config
// definition of a CUE schema file, or of the embedded schema when cueFile
// is empty.
func ValidateWithCue(configFile string, yamlBytes []byte, cueFile string) error {
	ctx := cuecontext.New()

	schemaBytes := embeddedSchema
	schemaName := "schema.cue"
	if cueFile != "" {
		b, err := os.ReadFile(cueFile)
		if err != nil {
			return fmt.Errorf("cannot read CUE schema: %w", err)
		}
		schemaBytes, schemaName = b, cueFile
	}
	schemaVal := ctx.CompileBytes(schemaBytes, cue.Filename(schemaName))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("CUE schema %s does not define #Config", schemaName)
	}

	file, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, cueerrors.Details(err, nil))
	}
	configVal := ctx.BuildFile(file)
	if err := configVal.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, cueerrors.Details(err, nil))
	}

	// Merge values with schema
	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, cueerrors.Details(err, nil))
	}
	return nil
}
