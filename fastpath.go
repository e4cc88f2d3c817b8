package reinfer

// fastPath handles the three trivial inputs spec.md §4.11 names, before
// either search engine is instantiated. ok is false when none applies and
// the full engine must run — including when pos's single word also appears
// in neg, which must fall through to closure.Build's duplicate-word check
// (spec.md §7 BadInput) rather than be shortcut into a regex that matches
// the very word it is meant to reject.
func fastPath(pos, neg []string) (re string, ok bool) {
	if len(pos) == 0 {
		return "Empty", true
	}
	if len(pos) == 1 && !contains(neg, pos[0]) {
		if pos[0] == "" {
			return "eps", true
		}
		if len(pos[0]) == 1 {
			return pos[0], true
		}
	}
	return "", false
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
