package expr

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)

var evaluateTestCases = []struct {
	name            string
	expression      string
	content         string
	expected        bool
	expectedMatches int
}{
	{
		name:            "ContainsHit",
		expression:      `contains("apple")`,
		content:         "apple apple apple",
		expected:        true,
		expectedMatches: 3,
	},
	{
		name:       "ContainsMiss",
		expression: `contains("pear")`,
		content:    "apple apple apple",
		expected:   false,
	},
	{
		name:            "ContainsIsCaseInsensitive",
		expression:      `contains("TODO")`,
		content:         "todo: write tests. Todo: run them.",
		expected:        true,
		expectedMatches: 2,
	},
	{
		name:       "ContainsEmptyNeedle",
		expression: `contains("")`,
		content:    "anything",
		expected:   false,
	},
	{
		name:       "PastWithNoDateToken",
		expression: `contains("TODO") && past(ts)`,
		content:    "TODO: no date here",
		expected:   false,
	},
	{
		name:            "PastWithOldDate",
		expression:      `contains("TODO") && past(ts)`,
		content:         "TODO from 1/2/26",
		expected:        true,
		expectedMatches: 1,
	},
	{
		name:       "PastOutsideLookback",
		expression: `past(ts, 7)`,
		content:    "written 1/2/26",
		expected:   false,
	},
	{
		name:       "FutureWithUpcomingDate",
		expression: `future(ts)`,
		content:    "deadline 12/31/26",
		expected:   true,
	},
	{
		name:       "FutureOutsideLookahead",
		expression: `future(ts, 7)`,
		content:    "deadline 12/31/26",
		expected:   false,
	},
	{
		name:       "TodayMatchesCurrentDate",
		expression: `today(ts)`,
		content:    "standup 6/15/26 9:00 AM",
		expected:   true,
	},
	{
		name:       "TodayRejectsOtherDate",
		expression: `today(ts)`,
		content:    "standup 6/14/26 9:00 AM",
		expected:   false,
	},
	{
		name:            "OrShortCircuits",
		expression:      `contains("note") || contains("missing")`,
		content:         "a note",
		expected:        true,
		expectedMatches: 1,
	},
	{
		name:            "PrecedenceAndBindsTighterThanOr",
		expression:      `contains("a") || contains("b") && contains("zzz")`,
		content:         "a b c",
		expected:        true,
		expectedMatches: 1,
	},
	{
		name:       "NotOperator",
		expression: `!contains("pear")`,
		content:    "apple",
		expected:   true,
	},
	{
		name:       "Arithmetic",
		expression: `1 + 2 * 3 == 7`,
		content:    "",
		expected:   true,
	},
	{
		name:       "TimestampComparison",
		expression: `ts > 0`,
		content:    "3/5/26",
		expected:   true,
	},
	{
		name:       "SingleQuotedStrings",
		expression: `contains('meeting notes')`,
		content:    "Meeting Notes from 3/5/26",
		expected:   true,
	},
	{
		name:       "BooleanLiterals",
		expression: `true && !false`,
		content:    "",
		expected:   true,
	},
	{
		name:       "ParenthesesOverridePrecedence",
		expression: `(contains("a") || contains("zzz")) && contains("b")`,
		content:    "a b",
		expected:   true,
	},
}

func TestEvaluate(t *testing.T) {
	assert := require.New(t)
	for _, testCase := range evaluateTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			env := NewEnv(testCase.content, evalNow)
			result := Evaluate(testCase.expression, env)

			assert.Equal(testCase.expected, result, "evaluation result should match")
			if testCase.expectedMatches > 0 {
				assert.Equal(testCase.expectedMatches, env.MatchCount(), "match count should match")
			}
		})
	}
}

var evaluateFailureTestCases = []struct {
	name       string
	expression string
}{
	{name: "Empty", expression: ""},
	{name: "UnterminatedString", expression: `contains("oops`},
	{name: "UnbalancedParen", expression: `(contains("a")`},
	{name: "UnknownFunction", expression: `grep("a")`},
	{name: "UnknownIdentifier", expression: `nope > 2`},
	{name: "WrongArity", expression: `contains("a", "b")`},
	{name: "WrongArgumentType", expression: `contains(42)`},
	{name: "MismatchedTypes", expression: `"a" + 1 == 2`},
	{name: "DivisionByZero", expression: `1 / 0 == 0`},
	{name: "TrailingGarbage", expression: `contains("a") )`},
	{name: "BareOperator", expression: `&&`},
	{name: "IllegalCharacter", expression: `contains("a") ; true`},
}

// Malformed expressions must evaluate to false, never escalate to the caller.
func TestEvaluateFailuresAreNonMatches(t *testing.T) {
	assert := require.New(t)
	for _, testCase := range evaluateFailureTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			env := NewEnv("some content with a 3/5/26 date", evalNow)
			assert.False(Evaluate(testCase.expression, env))
		})
	}
}

func TestEnvIsIsolatedPerContent(t *testing.T) {
	assert := require.New(t)

	first := NewEnv("apple apple", evalNow)
	second := NewEnv("apple", evalNow)

	assert.True(Evaluate(`contains("apple")`, first))
	assert.True(Evaluate(`contains("apple")`, second))
	assert.Equal(2, first.MatchCount())
	assert.Equal(1, second.MatchCount(), "counts must not leak across envs")
}

func TestTimestampBindingTracksContent(t *testing.T) {
	assert := require.New(t)

	env := NewEnv("note from 3/5/26 2:30 PM", evalNow)
	expected := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.Local).UnixMilli()
	assert.Equal(expected, env.Timestamp())

	assert.True(Evaluate(fmt.Sprintf("ts == %d", expected), env))
}
