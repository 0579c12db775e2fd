package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var ignoreTestCases = []struct {
	name     string
	patterns []string
	entry    string
	fullPath string
	excluded bool
}{
	{
		name:     "ExtensionPatternHitsName",
		patterns: []string{"*.log"},
		entry:    "output.log",
		fullPath: "/notes/build/output.log",
		excluded: true,
	},
	{
		name:     "ExtensionPatternIgnoresOtherFiles",
		patterns: []string{"*.log"},
		entry:    "notes.md",
		fullPath: "/notes/notes.md",
		excluded: false,
	},
	{
		name:     "DirectoryNameHit",
		patterns: []string{".git"},
		entry:    ".git",
		fullPath: "/notes/.git",
		excluded: true,
	},
	{
		name:     "PatternIsAnchored",
		patterns: []string{"build"},
		entry:    "rebuild",
		fullPath: "/notes/rebuild",
		excluded: false,
	},
	{
		name:     "FullPathHit",
		patterns: []string{"*/drafts/*"},
		entry:    "idea.md",
		fullPath: "/notes/drafts/idea.md",
		excluded: true,
	},
	{
		name:     "CaseInsensitive",
		patterns: []string{"*.LOG"},
		entry:    "output.log",
		fullPath: "/notes/output.log",
		excluded: true,
	},
	{
		name:     "AnyPatternSuffices",
		patterns: []string{"*.tmp", "*.log"},
		entry:    "scratch.tmp",
		fullPath: "/notes/scratch.tmp",
		excluded: true,
	},
	{
		name:     "BlankPatternsAreSkipped",
		patterns: []string{"", "   "},
		entry:    "notes.md",
		fullPath: "/notes/notes.md",
		excluded: false,
	},
	{
		name:     "NoPatterns",
		patterns: nil,
		entry:    "anything",
		fullPath: "/notes/anything",
		excluded: false,
	},
}

func TestCompileIgnore(t *testing.T) {
	assert := require.New(t)
	for _, testCase := range ignoreTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			excluded := compileIgnore(testCase.patterns)
			assert.Equal(testCase.excluded, excluded(testCase.entry, testCase.fullPath))
		})
	}
}
