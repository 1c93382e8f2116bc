package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type document struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Parse decodes a YAML catalog artifact.
//
// Unknown keys are rejected so a misspelled bound never silently disappears.
func Parse(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load reads a YAML catalog artifact from r.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrParseCatalog)
		}
		return nil, errors.Join(ErrParseCatalog, err)
	}
	return New(doc.Version, doc.Rules...)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultRules)
})

// Default returns the process-wide catalog parsed from the embedded rules.yaml.
// Parsing happens once; every caller receives the same instance.
func Default() (*Catalog, error) {
	return loadDefault()
}

// MustDefault is like Default but panics if the embedded artifact is invalid.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded rules: %v", err))
	}
	return c
}
