package reinfer

import (
	"regexp"
	"strings"
	"testing"
)

// translate rewrites reinfer's RE vocabulary into an anchored regexp/syntax
// pattern: "eps" becomes the empty alternative, alphabet bytes are escaped
// so punctuation in the example alphabet can't be misread as regexp syntax.
// Mirrors the stdlib-oracle comparison regex_stdlib_compat_test.go performs
// for the matching engine, adapted to our RE vocabulary instead of full
// Perl syntax.
func translate(re string) string {
	var b strings.Builder
	i := 0
	for i < len(re) {
		switch {
		case strings.HasPrefix(re[i:], "eps") && (i+3 == len(re) || re[i+3] == ')' || re[i+3] == '|'):
			i += 3
		case re[i] == '?' || re[i] == '*' || re[i] == '|' || re[i] == '(' || re[i] == ')':
			b.WriteByte(re[i])
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(re[i])))
			i++
		}
	}
	return b.String()
}

func accepts(t *testing.T, re, word string) bool {
	t.Helper()
	if re == "Empty" {
		return false
	}
	pattern := "^(?:" + translate(re) + ")$"
	rx, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("produced RE %q does not compile as regexp (%q): %v", re, pattern, err)
	}
	return rx.MatchString(word)
}

func requireSound(t *testing.T, re string, pos, neg []string) {
	t.Helper()
	if re == "not_found" {
		t.Fatalf("search returned not_found for a solvable instance")
	}
	for _, w := range pos {
		if !accepts(t, re, w) {
			t.Errorf("RE %q should accept positive example %q but does not", re, w)
		}
	}
	for _, w := range neg {
		if accepts(t, re, w) {
			t.Errorf("RE %q should reject negative example %q but accepts it", re, w)
		}
	}
}
