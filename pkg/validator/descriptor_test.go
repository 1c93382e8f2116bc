package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func TestDescriptors(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()
	ds := ev.Descriptors()
	require.Len(t, ds, ev.Catalog().Len())

	for i, d := range ds {
		assert.Equal(t, ev.Catalog().Fields()[i], d.Field)
		m, ok := ev.Matcher(d.Field)
		require.True(t, ok)
		assert.Equal(t, m.Restricted.String(), d.Pattern, d.Field)
	}

	username, ok := ev.Descriptor("username")
	require.True(t, ok)
	assert.Equal(t, catalog.KindText, username.Kind)
	assert.Equal(t, `[A-Za-z0-9_\x2D]+`, username.Pattern)
	assert.True(t, username.Required)
	assert.Equal(t, 3, *username.MinLength)
	assert.Equal(t, 16, *username.MaxLength)
	assert.Nil(t, username.MinCount)
	assert.Equal(t, "validation.username", username.ReasonKey)

	display, _ := ev.Descriptor("displayName")
	assert.Equal(t, "validation.display_name", display.ReasonKey)

	tags, _ := ev.Descriptor("tags")
	assert.Equal(t, catalog.KindCollection, tags.Kind)
	assert.Empty(t, tags.Pattern)
	assert.Equal(t, 1, *tags.MinCount)
	assert.Nil(t, tags.MaxLength)
	assert.True(t, tags.Required)

	_, ok = ev.Descriptor("nickname")
	assert.False(t, ok)
}

func TestDescriptor_BoundsAreCopies(t *testing.T) {
	t.Parallel()

	ev := validator.MustDefault()
	d, _ := ev.Descriptor("username")
	*d.MinLength = 0

	v := ev.MustEvaluate("username", "ab")
	assert.Equal(t, validator.ReasonTooShort, v.Reason)
}

func TestDescriptor_Required(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New("test",
		catalog.Rule{Field: "email", Pattern: `[^\s@]+@[^\s@]+`},
		catalog.Rule{Field: "nick", Pattern: `[a-z]*`},
		catalog.Rule{Field: "bio", MaxLength: catalog.Int(10)},
		catalog.Rule{Field: "city", MinLength: catalog.Int(1)},
		catalog.Rule{Field: "labels", Kind: catalog.KindCollection},
		catalog.Rule{Field: "photos", Kind: catalog.KindCollection, MinCount: catalog.Int(1)},
	)
	require.NoError(t, err)
	ev, err := validator.New(cat)
	require.NoError(t, err)

	tests := []struct {
		field    string
		required bool
	}{
		// no length bound, but the pattern rejects ""
		{"email", true},
		{"nick", false},
		{"bio", false},
		{"city", true},
		{"labels", false},
		{"photos", true},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			d, ok := ev.Descriptor(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.required, d.Required)
			assert.Equal(t, !tt.required, ev.MustEvaluate(tt.field, emptyValue(d.Kind)).Accepted)
		})
	}
}

func emptyValue(kind catalog.Kind) any {
	if kind == catalog.KindCollection {
		return []string{}
	}
	return ""
}
