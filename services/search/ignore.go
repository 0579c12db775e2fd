package search

import (
	"regexp"
	"strings"
)

// compileIgnore turns the ignore patterns into a single predicate over a bare
// entry name and its full path; a hit on either excludes the entry. Patterns
// are anchored start-to-end, case-insensitive, with '*' matching any sequence
// of any length. Blank patterns are skipped.
func compileIgnore(patterns []string) func(name, fullPath string) bool {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		re, err := regexp.Compile(ignorePattern(pattern))
		if err != nil {
			continue
		}
		compiled = append(compiled, re)
	}

	return func(name, fullPath string) bool {
		for _, re := range compiled {
			if re.MatchString(name) || re.MatchString(fullPath) {
				return true
			}
		}
		return false
	}
}

func ignorePattern(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?is)^`)

	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(`.*`)
		}
		b.WriteString(regexp.QuoteMeta(part))
	}

	b.WriteString(`$`)
	return b.String()
}
