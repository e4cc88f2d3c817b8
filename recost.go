package reinfer

import "fmt"

// CostOf parses re — a regex string over the RE vocabulary spec.md §6
// defines (`?`, `*`, `|`, concatenation by juxtaposition, `(...)`, the
// `eps` token) — and returns its cost under costFunc, independent of
// whatever cost the engine believed it found. This mirrors the original
// implementation's countOperations cross-check (SPEC_FULL §5): a caller
// can re-price a cached RE under a different cost function without
// re-running inference.
//
// "Empty" and "not_found" are not parseable regexes and return an error.
func CostOf(re string, costFunc [5]uint16) (int, error) {
	if re == "Empty" || re == "not_found" {
		return 0, fmt.Errorf("reinfer: %q is not a regex", re)
	}
	p := &costParser{runes: []rune(re), costs: costFunc}
	cost, err := p.parseOr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.runes) {
		return 0, fmt.Errorf("reinfer: unexpected trailing input in %q at offset %d", re, p.pos)
	}
	return cost, nil
}

type costParser struct {
	runes []rune
	pos   int
	costs [5]uint16
}

func (p *costParser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

// atEpsToken reports whether the epsilon token starts at pos and is not
// itself the prefix of a longer literal run — it must be followed by the
// end of input, a closing paren, or an alternation bar. Epsilon only ever
// appears at such a boundary in RE strings this package produces; alphabet
// letters 'e'/'p'/'s' concatenated with neighbors never trigger this path.
func (p *costParser) atEpsToken() bool {
	if p.pos+3 > len(p.runes) || string(p.runes[p.pos:p.pos+3]) != "eps" {
		return false
	}
	if p.pos+3 == len(p.runes) {
		return true
	}
	switch p.runes[p.pos+3] {
	case ')', '|':
		return true
	default:
		return false
	}
}

// parseOr := Concat ('|' Concat)*
func (p *costParser) parseOr() (int, error) {
	cost, err := p.parseConcat()
	if err != nil {
		return 0, err
	}
	for {
		r, ok := p.peek()
		if !ok || r != '|' {
			return cost, nil
		}
		p.pos++
		rhs, err := p.parseConcat()
		if err != nil {
			return 0, err
		}
		cost += rhs + int(p.costs[4])
	}
}

// parseConcat := Unary+, joined by implicit concatenation.
func (p *costParser) parseConcat() (int, error) {
	cost, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	n := 1
	for {
		r, ok := p.peek()
		if !ok || r == ')' || r == '|' {
			break
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		cost += rhs
		n++
	}
	cost += (n - 1) * int(p.costs[3])
	return cost, nil
}

// parseUnary := Atom ('?' | '*')?
func (p *costParser) parseUnary() (int, error) {
	cost, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	r, ok := p.peek()
	if !ok {
		return cost, nil
	}
	switch r {
	case '?':
		p.pos++
		return cost + int(p.costs[1]), nil
	case '*':
		p.pos++
		return cost + int(p.costs[2]), nil
	}
	return cost, nil
}

// parseAtom := '(' Or ')' | "eps" | <single rune literal>
func (p *costParser) parseAtom() (int, error) {
	r, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("reinfer: unexpected end of regex while parsing an atom")
	}
	if r == '(' {
		p.pos++
		cost, err := p.parseOr()
		if err != nil {
			return 0, err
		}
		r, ok = p.peek()
		if !ok || r != ')' {
			return 0, fmt.Errorf("reinfer: unbalanced parentheses at offset %d", p.pos)
		}
		p.pos++
		return cost, nil
	}
	if p.atEpsToken() {
		p.pos += 3
		return 0, nil
	}
	p.pos++
	return int(p.costs[0]), nil
}
