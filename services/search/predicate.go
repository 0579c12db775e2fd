package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ananyarao/notescout/expr"
)

// A gap in a wildcard query spans at most this many characters. Unbounded
// gaps would let a single match swallow distant unrelated occurrences.
const maxWildcardGap = 25

// matchFunc tests one content string against the query the factory was built
// with. Implementations are pure and safe for concurrent use.
type matchFunc func(content string) Outcome

// newMatchFunc builds the predicate for one search invocation.
func newMatchFunc(query string, searchType Type) matchFunc {
	switch searchType {
	case TypeWildcard:
		return newWildcardMatch(query)
	case TypeAdvanced:
		return newAdvancedMatch(query)
	default:
		return newLiteralMatch(query)
	}
}

func newLiteralMatch(query string) matchFunc {
	needle := strings.ToLower(query)

	return func(content string) Outcome {
		count := countOccurrences(content, needle)
		return Outcome{Matches: count > 0, MatchCount: count}
	}
}

func newWildcardMatch(query string) matchFunc {
	if query == "" {
		return neverMatch
	}

	pattern, err := regexp.Compile(wildcardPattern(query))
	if err != nil {
		return neverMatch
	}

	return func(content string) Outcome {
		hits := pattern.FindAllStringIndex(content, -1)
		return Outcome{Matches: len(hits) > 0, MatchCount: len(hits)}
	}
}

func newAdvancedMatch(query string) matchFunc {
	return func(content string) Outcome {
		env := expr.NewEnv(content, time.Now())
		if !expr.Evaluate(query, env) {
			return Outcome{}
		}

		// A purely boolean expression can be true without any contains()
		// hits; the result still needs a non-zero rank.
		count := max(env.MatchCount(), 1)

		outcome := Outcome{Matches: true, MatchCount: count}
		if ts := env.Timestamp(); ts > 0 {
			outcome.FoundTime = ts
		}
		return outcome
	}
}

func neverMatch(string) Outcome {
	return Outcome{}
}

// countOccurrences counts non-overlapping case-insensitive occurrences of
// needle, scanning left to right. An empty needle counts as zero so that a
// blank query can never match everything (or loop).
func countOccurrences(content, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(strings.ToLower(content), needle)
}

// wildcardPattern turns a wildcard query into a regular expression: every
// metacharacter except '*' is escaped and each '*' becomes a bounded
// any-character gap. (?s) lets gaps cross line boundaries in entire-file
// searches. The gap is non-greedy: each occurrence ends at the nearest
// continuation, so adjacent occurrences count separately instead of one gap
// swallowing the span between them.
func wildcardPattern(query string) string {
	var b strings.Builder
	b.WriteString(`(?is)`)

	for i, part := range strings.Split(query, "*") {
		if i > 0 {
			fmt.Fprintf(&b, `.{0,%d}?`, maxWildcardGap)
		}
		b.WriteString(regexp.QuoteMeta(part))
	}

	return b.String()
}
