package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var literalMatchTestCases = []struct {
	name          string
	query         string
	content       string
	expectedCount int
}{
	{
		name:          "ThreeOccurrences",
		query:         "apple",
		content:       "apple apple apple",
		expectedCount: 3,
	},
	{
		name:          "CaseInsensitive",
		query:         "Note",
		content:       "note NOTE nOtE",
		expectedCount: 3,
	},
	{
		name:          "NonOverlapping",
		query:         "aa",
		content:       "aaaa",
		expectedCount: 2,
	},
	{
		name:          "NoOccurrence",
		query:         "pear",
		content:       "apple apple",
		expectedCount: 0,
	},
	{
		name:          "EmptyQueryNeverMatches",
		query:         "",
		content:       "anything at all",
		expectedCount: 0,
	},
	{
		name:          "EmptyContent",
		query:         "apple",
		content:       "",
		expectedCount: 0,
	},
}

func TestLiteralMatch(t *testing.T) {
	assert := require.New(t)
	for _, testCase := range literalMatchTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			match := newMatchFunc(testCase.query, TypeLiteral)
			outcome := match(testCase.content)

			assert.Equal(testCase.expectedCount, outcome.MatchCount)
			assert.Equal(testCase.expectedCount > 0, outcome.Matches, "matches must mirror the count")
		})
	}
}

var wildcardMatchTestCases = []struct {
	name          string
	query         string
	content       string
	expectedCount int
}{
	{
		name:          "GapWithinBound",
		query:         "hel*world",
		content:       "Hello World hello world",
		expectedCount: 2,
	},
	{
		name:          "ExactTextNoStar",
		query:         "note",
		content:       "note notebook",
		expectedCount: 2,
	},
	{
		name:          "GapOfTwentyFiveMatches",
		query:         "A*B",
		content:       "A" + strings.Repeat("x", 25) + "B",
		expectedCount: 1,
	},
	{
		name:          "GapOfTwentySixDoesNotMatch",
		query:         "A*B",
		content:       "A" + strings.Repeat("x", 26) + "B",
		expectedCount: 0,
	},
	{
		// A gap must end at the nearest continuation; otherwise one match
		// would swallow the span between two occurrences in reach of the
		// gap bound and halve the count.
		name:          "AdjacentOccurrencesCountSeparately",
		query:         "a*b",
		content:       "a-b a-b",
		expectedCount: 2,
	},
	{
		name:          "GapCrossesLineBreaks",
		query:         "alpha*omega",
		content:       "alpha\nthen\nomega",
		expectedCount: 1,
	},
	{
		name:          "MetacharactersAreLiteral",
		query:         "a.c",
		content:       "abc a.c",
		expectedCount: 1,
	},
	{
		name:          "MultipleStars",
		query:         "a*b*c",
		content:       "a-b-c",
		expectedCount: 1,
	},
	{
		name:          "EmptyQueryNeverMatches",
		query:         "",
		content:       "anything",
		expectedCount: 0,
	},
}

func TestWildcardMatch(t *testing.T) {
	assert := require.New(t)
	for _, testCase := range wildcardMatchTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			match := newMatchFunc(testCase.query, TypeWildcard)
			outcome := match(testCase.content)

			assert.Equal(testCase.expectedCount, outcome.MatchCount)
			assert.Equal(testCase.expectedCount > 0, outcome.Matches)
		})
	}
}

func TestAdvancedMatch(t *testing.T) {
	assert := require.New(t)

	t.Run("ContainsCountsSurface", func(t *testing.T) {
		match := newMatchFunc(`contains("apple")`, TypeAdvanced)
		outcome := match("apple apple apple")

		assert.True(outcome.Matches)
		assert.Equal(3, outcome.MatchCount)
		assert.Zero(outcome.FoundTime, "no date token means no found time")
	})

	t.Run("BooleanOnlyExpressionRanksAtLeastOne", func(t *testing.T) {
		match := newMatchFunc(`ts == 0`, TypeAdvanced)
		outcome := match("no date in this content")

		assert.True(outcome.Matches)
		assert.Equal(1, outcome.MatchCount)
	})

	t.Run("FoundTimeComesFromContent", func(t *testing.T) {
		match := newMatchFunc(`contains("meeting")`, TypeAdvanced)
		outcome := match("meeting on 3/5/26 2:30 PM")

		assert.True(outcome.Matches)
		expected := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.Local).UnixMilli()
		assert.Equal(expected, outcome.FoundTime)
	})

	t.Run("PastWithoutDateTokenFails", func(t *testing.T) {
		match := newMatchFunc(`contains("TODO") && past(ts)`, TypeAdvanced)
		outcome := match("TODO: no date here")

		assert.False(outcome.Matches)
		assert.Zero(outcome.MatchCount)
	})

	t.Run("MalformedExpressionIsNonMatch", func(t *testing.T) {
		match := newMatchFunc(`contains("unterminated`, TypeAdvanced)
		outcome := match("anything")

		assert.False(outcome.Matches)
		assert.Zero(outcome.MatchCount)
	})
}
