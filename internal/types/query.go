package types

// Origin records whether a SQL string was authored by hand or produced by
// the natural-language translator.
type Origin string

const (
	OriginDirect    Origin = "direct"
	OriginGenerated Origin = "generated"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// QueryRequest is a SQL statement submitted for execution.
type QueryRequest struct {
	RawSQL string `json:"sql"`
	Origin Origin `json:"origin"`
}

// QueryResult is the outcome of one executed request. A failed result always
// has empty Rows and a non-empty Error; a successful one has an empty Error
// and RowCount == len(Rows).
type QueryResult struct {
	Success  bool   `json:"success"`
	Rows     []Row  `json:"rows,omitempty"`
	RowCount int    `json:"rowCount"`
	Error    string `json:"error,omitempty"`
}

// Succeeded builds a successful QueryResult from fetched rows.
func Succeeded(rows []Row) QueryResult {
	return QueryResult{
		Success:  true,
		Rows:     rows,
		RowCount: len(rows),
	}
}

// Failed builds a failed QueryResult carrying only an error message.
func Failed(message string) QueryResult {
	return QueryResult{
		Success: false,
		Error:   message,
	}
}

// TranslationResult is the outcome of one natural-language translation.
// Confidence and TablesUsed are carried through from the model as hints;
// the translator never verifies that the referenced tables exist.
type TranslationResult struct {
	SQL        string   `json:"sql"`
	Confidence int      `json:"confidence"`
	TablesUsed []string `json:"tables_used,omitempty"`
	Error      string   `json:"error,omitempty"`
}
