package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kyleking/db-scout/internal/llm"
	"github.com/kyleking/db-scout/internal/logging"
	"github.com/kyleking/db-scout/internal/schema"
	"github.com/kyleking/db-scout/internal/types"
)

// Policy controls prompt-level generation constraints. Blocked column
// fragments are a hint to the model, independent of the safety validator's
// hard gate.
type Policy struct {
	BlockSensitive bool
	BlockedColumns []string
}

// Translator turns natural-language questions into candidate SQL using a
// language model grounded on a schema snapshot. It never raises past its
// own boundary: every failure becomes a TranslationResult with Error set
// and an empty SQL string.
type Translator struct {
	service llm.Service
	policy  Policy
}

// New creates a translator over the given model service.
func New(service llm.Service, policy Policy) *Translator {
	return &Translator{
		service: service,
		policy:  policy,
	}
}

// modelResponse is the structured JSON shape requested from the model.
type modelResponse struct {
	SQL        string   `json:"sql"`
	Confidence *float64 `json:"confidence"`
	TablesUsed []string `json:"tables_used"`
	Error      string   `json:"error"`
}

// Translate renders the schema into the prompt, invokes the model and
// parses its JSON response into a candidate SQL string plus confidence
// metadata. Confidence and tables_used are carried through uninterpreted;
// the translator does not verify that the referenced tables exist.
func (t *Translator) Translate(
	ctx context.Context,
	question string,
	snapshot *schema.Database,
) types.TranslationResult {
	logger := logging.GetLogger()

	prompt := t.buildPrompt(question, snapshot)

	raw, err := t.service.Complete(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr("Model invocation failed", err)
		return types.TranslationResult{Error: err.Error()}
	}

	var response modelResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &response); err != nil {
		logger.Debugf("Unparseable model response: %.200s", raw)
		return types.TranslationResult{Error: "Invalid JSON response"}
	}

	result := types.TranslationResult{
		SQL:        cleanSQL(response.SQL),
		TablesUsed: response.TablesUsed,
		Error:      response.Error,
	}

	if response.Confidence != nil {
		result.Confidence = clampConfidence(*response.Confidence)
	}

	if isEmptySQL(result.SQL) && result.Error == "" {
		result.Error = "Generated SQL is empty"
	}

	return result
}

// buildPrompt states the task, embeds the rendered schema and the question
// verbatim, and enumerates the hard constraints the generated SQL must
// satisfy.
func (t *Translator) buildPrompt(question string, snapshot *schema.Database) string {
	quote := snapshot.Quote
	if quote == "" {
		quote = "`"
	}

	var sb strings.Builder

	sb.WriteString("You are an expert at converting natural language questions into SQL queries.\n")
	sb.WriteString("Convert the user's question into a single SQL query against the schema below.\n\n")

	sb.WriteString("Respond with a JSON object containing exactly these fields:\n")
	sb.WriteString("- sql: the generated SQL query\n")
	sb.WriteString("- confidence: an integer between 0 and 100\n")
	sb.WriteString("- tables_used: an array of the table names the query reads\n\n")

	sb.WriteString("The generated SQL must satisfy all of these constraints:\n")
	sb.WriteString("1. A single statement, SELECT only\n")
	sb.WriteString("2. Reference only tables and columns present in the schema\n")
	sb.WriteString("3. No multi-table joins of any kind\n")
	sb.WriteString(fmt.Sprintf("4. Quote identifiers with %s when quoting is needed\n", quote))
	sb.WriteString("5. End with a semicolon\n")

	if t.policy.BlockSensitive && len(t.policy.BlockedColumns) > 0 {
		sb.WriteString(fmt.Sprintf(
			"6. Never select columns whose names contain: %s\n",
			strings.Join(t.policy.BlockedColumns, ", ")))
	}

	sb.WriteString("\nDatabase Schema:\n")
	sb.WriteString(snapshot.Render())

	sb.WriteString("\nUser Question: ")
	sb.WriteString(question)

	return sb.String()
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)

	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")

	// Drop a language tag on the opening fence line.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, " \t{[") {
			trimmed = trimmed[idx+1:]
		}
	}

	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// cleanSQL strips fence markers and stray quote characters from the
// extracted SQL and ensures a trailing statement terminator.
func cleanSQL(sqlText string) string {
	cleaned := stripCodeFences(sqlText)
	cleaned = strings.Trim(cleaned, "\"'")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return cleaned
	}

	if !strings.HasSuffix(cleaned, ";") {
		cleaned += ";"
	}

	return cleaned
}

// isEmptySQL reports whether the cleaned SQL carries no statement at all.
func isEmptySQL(sqlText string) bool {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sqlText), ";")) == ""
}

// clampConfidence converts a model confidence value to an int in 0..100.
// Models sometimes answer with a 0..1 float even when asked for an integer.
func clampConfidence(value float64) int {
	if value > 0 && value <= 1 {
		value *= 100
	}

	if value < 0 {
		return 0
	}

	if value > 100 {
		return 100
	}

	return int(value)
}
