// Package apischema publishes the rule catalog as an OpenAPI 3 schema so API
// clients can enforce the same constraints as the HTML forms.
package apischema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

const (
	// ReasonKeyExtension carries the translation key prefix of a property.
	ReasonKeyExtension = "x-reason-key"
	// CatalogVersionExtension carries the catalog version on the record schema.
	CatalogVersionExtension = "x-catalog-version"

	// RecordSchemaName is the component name of the record schema.
	RecordSchemaName = "ProfileRecord"
)

// Record builds an object schema with one property per catalog rule.
// Properties are optional: absent fields are never evaluated.
//
// Patterns are the restricted (ECMAScript) form wrapped in ^(?:...)$ since
// JSON Schema patterns are not implicitly anchored.
func Record(ev *validator.Evaluator) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Extensions = map[string]any{CatalogVersionExtension: ev.Catalog().Version()}
	for _, d := range ev.Descriptors() {
		obj.WithProperty(d.Field, Property(d))
	}
	return obj
}

// Property converts one descriptor into a property schema.
func Property(d validator.Descriptor) *openapi3.Schema {
	var s *openapi3.Schema
	switch d.Kind {
	case catalog.KindCollection:
		s = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
		if d.MinCount != nil {
			s.MinItems = uint64(*d.MinCount)
		}
	default:
		s = openapi3.NewStringSchema()
		if d.Pattern != "" {
			s.Pattern = "^(?:" + d.Pattern + ")$"
		}
		if d.MinLength != nil {
			s.MinLength = uint64(*d.MinLength)
		}
		if d.MaxLength != nil {
			n := uint64(*d.MaxLength)
			s.MaxLength = &n
		}
	}
	s.Extensions = map[string]any{ReasonKeyExtension: d.ReasonKey}
	return s
}

// Document wraps the record schema in a minimal OpenAPI document.
func Document(ev *validator.Evaluator, title string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: ev.Catalog().Version(),
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				RecordSchemaName: openapi3.NewSchemaRef("", Record(ev)),
			},
		},
	}
}
