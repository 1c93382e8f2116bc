package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, "1", cat.Version())

	t.Run("declaration order", func(t *testing.T) {
		assert.Equal(t, []string{
			"username", "name", "displayName", "email", "password",
			"birthDate", "biography", "city", "tags", "photos",
		}, cat.Fields())
	})

	t.Run("same instance on every call", func(t *testing.T) {
		again, err := catalog.Default()
		require.NoError(t, err)
		assert.Same(t, cat, again)
	})

	t.Run("bounds", func(t *testing.T) {
		tests := []struct {
			field    string
			min, max *int
		}{
			{"username", catalog.Int(3), catalog.Int(16)},
			{"name", catalog.Int(2), catalog.Int(50)},
			{"displayName", catalog.Int(2), catalog.Int(50)},
			{"password", catalog.Int(8), nil},
			{"biography", catalog.Int(10), catalog.Int(500)},
			{"city", catalog.Int(1), catalog.Int(100)},
			{"email", nil, nil},
		}
		for _, tt := range tests {
			rule, ok := cat.Get(tt.field)
			require.True(t, ok, tt.field)
			assert.Equal(t, tt.min, rule.MinLength, tt.field)
			assert.Equal(t, tt.max, rule.MaxLength, tt.field)
		}
	})

	t.Run("collections have a minimum and no maximum", func(t *testing.T) {
		for _, field := range []string{"tags", "photos"} {
			rule, ok := cat.Get(field)
			require.True(t, ok)
			assert.Equal(t, catalog.KindCollection, rule.Kind)
			assert.Equal(t, catalog.Int(1), rule.MinCount)
			assert.Empty(t, rule.Pattern)
		}
	})

	t.Run("reason keys", func(t *testing.T) {
		rule, _ := cat.Get("username")
		assert.Equal(t, "validation.username", rule.ReasonKey())
		rule, _ = cat.Get("birthDate")
		assert.Equal(t, "validation.birth_date", rule.ReasonKey())
	})
}

func TestCatalog_Get(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New("test",
		catalog.Rule{Field: "code", Pattern: "[A-Z]+", MinLength: catalog.Int(2), Requires: []string{"[A-Z]"}},
	)
	require.NoError(t, err)

	t.Run("missing field is absent", func(t *testing.T) {
		_, ok := cat.Get("nope")
		assert.False(t, ok)
		assert.False(t, cat.Has("nope"))
		assert.Equal(t, -1, cat.Position("nope"))
	})

	t.Run("kind defaults to text", func(t *testing.T) {
		rule, ok := cat.Get("code")
		require.True(t, ok)
		assert.Equal(t, catalog.KindText, rule.Kind)
	})

	t.Run("returned rules do not alias catalog state", func(t *testing.T) {
		rule, _ := cat.Get("code")
		*rule.MinLength = 99
		rule.Requires[0] = "[a-z]"

		again, _ := cat.Get("code")
		assert.Equal(t, 2, *again.MinLength)
		assert.Equal(t, "[A-Z]", again.Requires[0])
	})

	t.Run("fields slice is a copy", func(t *testing.T) {
		fields := cat.Fields()
		fields[0] = "mutated"
		assert.Equal(t, []string{"code"}, cat.Fields())
	})
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		rules   []catalog.Rule
		want    error
	}{
		{
			name:    "missing version",
			version: "",
			want:    catalog.ErrMissingVersion,
		},
		{
			name:    "empty field",
			version: "1",
			rules:   []catalog.Rule{{Field: " "}},
			want:    catalog.ErrEmptyField,
		},
		{
			name:    "duplicate field",
			version: "1",
			rules:   []catalog.Rule{{Field: "a"}, {Field: "a"}},
			want:    catalog.ErrDuplicateField,
		},
		{
			name:    "inverted length",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", MinLength: catalog.Int(5), MaxLength: catalog.Int(2)}},
			want:    catalog.ErrInvalidRule,
		},
		{
			name:    "negative bound",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", MinLength: catalog.Int(-1)}},
			want:    catalog.ErrInvalidRule,
		},
		{
			name:    "count on text rule",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", MinCount: catalog.Int(1)}},
			want:    catalog.ErrInvalidRule,
		},
		{
			name:    "pattern on collection",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", Kind: catalog.KindCollection, Pattern: "[a-z]+"}},
			want:    catalog.ErrInvalidRule,
		},
		{
			name:    "requires without pattern",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", Requires: []string{"[a-z]"}}},
			want:    catalog.ErrInvalidRule,
		},
		{
			name:    "unknown kind",
			version: "1",
			rules:   []catalog.Rule{{Field: "a", Kind: "number"}},
			want:    catalog.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.version, tt.rules...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`
version: "2"
rules:
  - field: nickname
    pattern: "[a-z]+"
    max_length: 10
  - field: labels
    kind: collection
    min_count: 2
`))
		require.NoError(t, err)
		assert.Equal(t, "2", cat.Version())
		assert.Equal(t, 2, cat.Len())

		rule, ok := cat.Get("labels")
		require.True(t, ok)
		assert.Equal(t, 2, *rule.MinCount)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`
version: "2"
rules:
  - field: nickname
    max_lenght: 10
`))
		assert.ErrorIs(t, err, catalog.ErrParseCatalog)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := catalog.Load(strings.NewReader(""))
		assert.ErrorIs(t, err, catalog.ErrParseCatalog)
	})

	t.Run("authoring errors propagate", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`
version: "2"
rules:
  - field: a
  - field: a
`))
		assert.ErrorIs(t, err, catalog.ErrDuplicateField)
	})
}

func TestMustDefault(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		cat := catalog.MustDefault()
		assert.True(t, cat.Has("password"))
	})
}
