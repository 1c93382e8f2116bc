package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/pattern"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type nickname string

func TestEvaluate_Text(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()

	tests := []struct {
		name   string
		field  string
		value  any
		reason validator.Reason
	}{
		{"username at lower bound", "username", "abc", ""},
		{"username at upper bound", "username", strings.Repeat("a", 16), ""},
		{"username below lower bound", "username", "ab", validator.ReasonTooShort},
		{"username above upper bound", "username", strings.Repeat("a", 17), validator.ReasonTooLong},
		{"username with space", "username", "ab cd", validator.ReasonPatternMismatch},
		{"username with hyphen and underscore", "username", "a-b_c", ""},
		{"named string type", "username", nickname("alice"), ""},
		{"too long wins over mismatch", "username", strings.Repeat("!", 20), validator.ReasonTooLong},

		{"name with apostrophe", "name", "O'Brien", ""},
		{"name precomposed accent", "name", "Jos\u00e9", ""},
		{"name decomposed accent", "name", "Zoe\u0308", ""},
		{"name single decomposed letter", "name", "e\u0301", validator.ReasonTooShort},
		{"name with digit", "name", "R2D2", validator.ReasonPatternMismatch},

		{"email", "email", "user@example.com", ""},
		{"email without tld", "email", "user@example", validator.ReasonPatternMismatch},
		{"email with space", "email", "us er@example.com", validator.ReasonPatternMismatch},
		{"email empty", "email", "", validator.ReasonPatternMismatch},
		{"email with invalid utf-8", "email", "a\xff@b.com", validator.ReasonPatternMismatch},

		{"password strong", "password", "Str0ng!Pass", ""},
		{"password no upper", "password", "weak1!pass", validator.ReasonPatternMismatch},
		{"password no symbol", "password", "Weak1pass", validator.ReasonPatternMismatch},
		{"password short", "password", "Ab1!", validator.ReasonTooShort},
		{"password foreign symbol", "password", "Str0ng#Pass", validator.ReasonPatternMismatch},

		{"birth date", "birthDate", "1990-05-17", ""},
		{"birth date other layout", "birthDate", "17/05/1990", validator.ReasonPatternMismatch},

		{"biography", "biography", "I write \"Go\" & ride bikes (mostly).\nSee you!", ""},
		{"biography short", "biography", "Hi there", validator.ReasonTooShort},
		{"biography with markup", "biography", "<b>bold</b> claims", validator.ReasonPatternMismatch},

		{"city free text", "city", "\u6771\u4eac", ""},
		{"city empty", "city", "", validator.ReasonTooShort},
		{"city in latin-1 bytes", "city", "K\xf6ln", validator.ReasonPatternMismatch},

		{"unknown field", "nickname", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ev.Evaluate(tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.field, v.Field)
			assert.Equal(t, tt.reason, v.Reason)
			assert.Equal(t, tt.reason == "", v.Accepted)
		})
	}
}

func TestEvaluate_Collections(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()

	tests := []struct {
		name     string
		value    any
		accepted bool
	}{
		{"empty slice", []string{}, false},
		{"nil slice", []string(nil), false},
		{"one element", []string{"go"}, true},
		{"many elements", []any{"a", "b", "c"}, true},
		{"array", [2]string{"a", "b"}, true},
		{"zero count", 0, false},
		{"positive count", 12, true},
		{"unsigned count", uint8(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ev.Evaluate("tags", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, v.Accepted)
			if !tt.accepted {
				assert.Equal(t, validator.ReasonTooFew, v.Reason)
			}
		})
	}

	t.Run("no upper bound", func(t *testing.T) {
		v, err := ev.Evaluate("photos", make([]string, 10_000))
		require.NoError(t, err)
		assert.True(t, v.Accepted)
	})
}

func TestEvaluate_ContractViolations(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()

	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"int for text", "username", 42, "a string"},
		{"nil for text", "username", nil, "a string"},
		{"slice for text", "email", []string{"a@b.c"}, "a string"},
		{"string for collection", "tags", "go,rust", "a list or a count"},
		{"nil for collection", "photos", nil, "a list or a count"},
		{"negative count", "tags", -1, "a non-negative count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(tt.field, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, validator.ErrContractViolation)

			var ce *validator.ContractError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, tt.want, ce.Want)

			assert.Panics(t, func() { ev.MustEvaluate(tt.field, tt.value) })
		})
	}
}

func TestEvaluate_KnownFieldsOnly(t *testing.T) {
	t.Parallel()

	ev, err := validator.New(catalog.MustDefault(), validator.WithKnownFieldsOnly())
	require.NoError(t, err)

	_, err = ev.Evaluate("nickname", "neo")
	assert.ErrorIs(t, err, validator.ErrUnknownField)
	assert.ErrorIs(t, err, validator.ErrContractViolation)

	v, err := ev.Evaluate("username", "neo")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
}

func TestEvaluate_Translation(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()

	t.Run("default reason key", func(t *testing.T) {
		v := ev.MustEvaluate("username", "ab")
		assert.Equal(t, "validation.username.too_short", v.TranslationKey)
		assert.Equal(t, map[string]any{"min": 3, "length": 2}, v.TranslationValues)
		assert.Equal(t, "must be at least 3 characters long", v.Message)
	})

	t.Run("catalog reason key", func(t *testing.T) {
		v := ev.MustEvaluate("displayName", strings.Repeat("x", 51))
		assert.Equal(t, "validation.display_name.too_long", v.TranslationKey)
		assert.Equal(t, 50, v.TranslationValues["max"])
	})

	t.Run("count", func(t *testing.T) {
		v := ev.MustEvaluate("photos", []string{})
		assert.Equal(t, "validation.photos.too_few", v.TranslationKey)
		assert.Equal(t, "must contain at least 1 items", v.Message)
	})

	t.Run("accepted verdicts carry no key", func(t *testing.T) {
		v := ev.MustEvaluate("username", "alice")
		assert.Empty(t, v.TranslationKey)
		assert.Empty(t, v.Message)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil catalog", func(t *testing.T) {
		_, err := validator.New(nil)
		assert.Error(t, err)
	})

	t.Run("reports every broken rule", func(t *testing.T) {
		cat, err := catalog.New("test",
			catalog.Rule{Field: "a", Pattern: `[a-`},
			catalog.Rule{Field: "b", Pattern: `[a-z]+`},
			catalog.Rule{Field: "c", Pattern: `\x{D800}`},
		)
		require.NoError(t, err)

		_, err = validator.New(cat)
		require.Error(t, err)
		assert.ErrorIs(t, err, pattern.ErrSyntax)
		assert.ErrorIs(t, err, pattern.ErrNotEmbeddable)
		assert.Contains(t, err.Error(), `"a"`)
		assert.Contains(t, err.Error(), `"c"`)
		assert.NotContains(t, err.Error(), `"b"`)
	})

	t.Run("exposes catalog and matchers", func(t *testing.T) {
		ev := validator.MustDefault()
		assert.Same(t, catalog.MustDefault(), ev.Catalog())

		m, ok := ev.Matcher("password")
		require.True(t, ok)
		assert.NotEmpty(t, m.Restricted.String())

		m, ok = ev.Matcher("city")
		require.True(t, ok)
		assert.True(t, m.Empty())

		_, ok = ev.Matcher("nickname")
		assert.False(t, ok)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	a, err := validator.Default()
	require.NoError(t, err)
	b, err := validator.Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.NotPanics(t, func() { validator.MustDefault() })
}
