package search

// Type selects the query dialect.
type Type string

const (
	TypeLiteral  Type = "literal"
	TypeWildcard Type = "wildcard"
	TypeAdvanced Type = "advanced"
)

// Mode selects what the query is matched against.
type Mode string

const (
	ModeContent   Mode = "content"
	ModeFilenames Mode = "filenames"
)

// Block selects the match granularity for content searches.
type Block string

const (
	BlockEntireFile Block = "entire-file"
	BlockFileLines  Block = "file-lines"
)

// Request describes one search invocation. It is not mutated by the engine.
type Request struct {
	Path         string
	Query        string
	Type         Type
	Mode         Mode
	Block        Block
	IgnoredPaths []string
}

func (r *Request) ApplyDefaults() {
	if r.Type == "" {
		r.Type = TypeLiteral
	}
	if r.Mode == "" {
		r.Mode = ModeContent
	}
	if r.Block == "" {
		r.Block = BlockEntireFile
	}
}

// Result is one match site. Optional fields use zero as the absent sentinel
// and are omitted from JSON; timestamps are epoch milliseconds and line
// numbers are 1-based.
type Result struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	MatchCount   int    `json:"match_count"`
	LineNumber   int    `json:"line_number,omitempty"`
	LineText     string `json:"line_text,omitempty"`
	FoundTime    int64  `json:"found_time,omitempty"`
	ModifiedTime int64  `json:"modified_time,omitempty"`
	CreatedTime  int64  `json:"created_time,omitempty"`
}

// Outcome is what a match predicate reports for one content string.
type Outcome struct {
	Matches    bool
	MatchCount int
	FoundTime  int64
}
