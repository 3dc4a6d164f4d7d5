package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	"langpedia/internal/domain"
)

//go:embed catalog.schema.json
var schemaJSON string

//go:embed default.yaml
var defaultYAML []byte

const schemaName = "catalog.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError lists every schema violation found in a catalog document.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "catalog validation failed"
	}
	return fmt.Sprintf("catalog validation failed: %s", strings.Join(e.Errors, "; "))
}

type document struct {
	Languages []domain.CatalogItem `yaml:"languages"`
}

// Parse decodes a YAML or JSON catalog document, checks it against the catalog schema and
// builds a validated Catalog.
func Parse(data []byte) (*Catalog, error) {
	items, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return New(items)
}

// Decode decodes and schema-checks a catalog document without building the index.
func Decode(data []byte) ([]domain.CatalogItem, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Languages, nil
}

// ParseFile reads and parses a catalog file.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks a decoded document against the embedded schema.
func Validate(raw interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(raw); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return ValidationError{Errors: []string{err.Error()}}
		}
		var msgs []string
		for _, leaf := range leafCauses(verr) {
			msgs = append(msgs, fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message))
		}
		if len(msgs) == 0 {
			msgs = append(msgs, verr.Message)
		}
		return ValidationError{Errors: msgs}
	}
	return nil
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leafCauses(cause)...)
	}
	return out
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(schemaName, schemaJSON)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema %s: %w", schemaName, schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled catalog is invalid: %v", err))
	}
	return c
}
