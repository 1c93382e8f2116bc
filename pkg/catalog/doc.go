// Package catalog holds the single, versioned table of field constraints for
// account and profile data.
//
// Every bound (minimum password length, username length range, biography size)
// and every accepted-character pattern is declared exactly once, in the embedded
// rules.yaml artifact. Browser-facing code and request handlers both derive their
// behaviour from the same *Catalog value, so the two sides cannot drift.
//
// # Usage
//
//	cat := catalog.MustDefault()
//	rule, ok := cat.Get("username")
//	if !ok {
//	    // unconstrained field
//	}
//
// Catalogs are immutable once built. Tests that need a different set of rules
// build their own with New or Parse; several catalogs can coexist in one process.
//
// # Rules
//
// A Rule has a kind (text or collection), an optional canonical pattern,
// optional "requires" classes (each must occur at least once), optional
// min/max length in logical characters and, for collections, an optional
// minimum element count. Collections have no maximum count.
//
// # Error Handling
//
// Authoring mistakes surface when the catalog is built: ErrInvalidRule,
// ErrDuplicateField, ErrEmptyField, ErrMissingVersion and ErrParseCatalog.
// Lookups never fail; a missing rule means the field is unconstrained.
package catalog
