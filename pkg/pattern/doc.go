// Package pattern compiles canonical catalog patterns into two matchers that
// accept exactly the same strings: a Full form run by Go's RE2 engine on the
// server, and a Restricted form embedded in HTML pattern attributes and run by
// the browser's ECMAScript engine.
//
// # Canonical dialect
//
// Catalog patterns use a small, engine-independent syntax:
//
//	literals          a  \.  \-  \x{E9}  \t \n \r \f \v
//	classes           [a-z_]  [^\s@]  [\p{L}\p{M} '-]
//	named sets        \d (0-9)  \w (A-Za-z0-9_)  \s (fixed whitespace list)
//	properties        \p{L}  \p{Lu}  \p{Greek}
//	groups            (ab|cd)
//	quantifiers       *  +  ?  {n}  {n,}  {n,m}
//
// Patterns are always anchored at both ends. '.', '^', '$', lazy quantifiers,
// backreferences and lookaround are not part of the dialect; "must contain"
// constraints are expressed with separate requirement classes instead, which
// become containment programs in RE2 and (?=[^C]*[C]) lookaheads in the
// restricted form.
//
// A hyphen inside a class is literal only at either edge or when escaped;
// anywhere else it must form a range.
//
// # Restricted form
//
// The restricted form is valid under both the u and v (set notation) flags.
// Inside classes every character outside [A-Za-z0-9_] is written as \xHH,
// \uHHHH or \u{H...}; outside classes only syntax characters take identity
// escapes. Scripts render as \p{sc=Name}.
//
// # Equivalence
//
// Compile proves equivalence structurally: the restricted text is parsed back
// by a restricted-dialect parser and must yield the exact tree the canonical
// pattern produced. It then runs both forms over a deterministic corpus built
// from the rule's alphabet. Restricted.Match interprets the restricted tree
// with browser anchoring, which is what the corpus check and the package
// fuzz tests compare RE2 against. It is a verification tool with a
// super-linear worst case; runtime checks go through Matcher.Match.
//
// Compilation fails with ErrSyntax for malformed patterns and with
// ErrNotEmbeddable when no equivalent restricted form exists (surrogate code
// points, for example). Both are catalog-authoring errors.
package pattern
