package main

import (
	"regexp"
	"strings"
)

// translate rewrites reinfer's RE vocabulary (alphabet characters, ?, *,
// |, concatenation, parens, the "eps" token) into an anchorable
// regexp/syntax pattern, the same approach reinfer's own test suite uses
// to check a produced regex against its examples.
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

// matches reports whether re accepts word, used for main.cpp's post-hoc
// sanity pass over the result.
func matches(re, word string) bool {
	if re == "Empty" {
		return false
	}
	rx, err := regexp.Compile("^(?:" + translate(re) + ")$")
	if err != nil {
		return false
	}
	return rx.MatchString(word)
}
