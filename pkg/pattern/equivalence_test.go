package pattern_test

import (
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/pattern"
)

func defaultMatchers(t testing.TB) map[string]*pattern.Matcher {
	t.Helper()

	cat := catalog.MustDefault()
	out := make(map[string]*pattern.Matcher, cat.Len())
	for _, field := range cat.Fields() {
		rule, _ := cat.Get(field)
		m, err := pattern.CompileRule(rule)
		require.NoError(t, err)
		out[field] = m
	}
	return out
}

func TestEquivalence_RandomInputs(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 42))
	for field, m := range defaultMatchers(t) {
		t.Run(field, func(t *testing.T) {
			alpha := m.Alphabet()
			require.NotEmpty(t, alpha)

			for range 3000 {
				n := rng.IntN(24)
				buf := make([]rune, n)
				for i := range buf {
					buf[i] = alpha[rng.IntN(len(alpha))]
				}
				require.NoError(t, pattern.Verify(m, string(buf)))
			}
		})
	}
}

func TestEquivalence_Examples(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "a", "ab", "abc", "alice_01", "a-b", "al ice", "jean-luc", "O'Brien", "José", "Zoë",
		"a@b.co", "a@b", "a b@c.d", "a@@b.c", "a@b.c\n", "a @b.c",
		"Str0ng!Pass", "weakpass", "NoDigits!", "1990-05-17", "1990-5-17", "199O-05-17",
		"Hello, world! (It's fine) #1 & 100% +more=less/*", "line\nbreak", "tab\there",
		"\u00e9", "e\u0301", "\U0001D518", "\u4e2d\u6587", "\ufeff", "\x7f",
	}
	for field, m := range defaultMatchers(t) {
		for _, in := range inputs {
			require.NoError(t, pattern.Verify(m, in), "field %s", field)
		}
	}
}

func FuzzEquivalence(f *testing.F) {
	for _, seed := range []string{"", "alice", "a@b.c", "Abcdef1!", "1990-05-17", "O'Brien", "é", "a b"} {
		f.Add(seed)
	}
	matchers := defaultMatchers(f)

	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		for field, m := range matchers {
			if err := pattern.Verify(m, in); err != nil {
				t.Fatalf("field %s: %v", field, err)
			}
		}
	})
}

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{`[a-z]+`, `a(b|c)*d`, `[^\s@]+@x`, `\p{Greek}{2,3}`, `x{0,2}y?`, `[\-a]|b`} {
		f.Add(seed, "abc")
	}

	f.Fuzz(func(t *testing.T, src, in string) {
		if len(src) > 64 || len(in) > 32 || !utf8.ValidString(in) {
			t.Skip()
		}
		m, err := pattern.Compile(src)
		if err != nil {
			return
		}
		if err := pattern.Verify(m, in); err != nil {
			t.Fatalf("pattern %q: %v", src, err)
		}
	})
}
