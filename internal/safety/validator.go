package safety

import (
	"fmt"
	"strings"
)

// denylist holds the mutation and DDL keywords rejected anywhere in a
// statement. The match is a plain substring scan, not a parse, so a quoted
// value or a column name containing one of these words also trips the check.
var denylist = []string{
	"insert",
	"update",
	"delete",
	"drop",
	"alter",
	"truncate",
	"create",
}

// Verdict is the outcome of classifying one SQL string.
type Verdict struct {
	Safe   bool
	Reason string
}

// Classify decides whether a SQL string may reach the database. The check is
// syntactic: the normalized statement must start with the literal token
// "select" and must not contain any denylisted keyword as a substring. It is
// stateless and runs identically for hand-written and generated SQL.
func Classify(sqlText string) Verdict {
	normalized := strings.ToLower(strings.TrimSpace(sqlText))

	if normalized == "" {
		return Verdict{Safe: false, Reason: "statement is empty"}
	}

	if !strings.HasPrefix(normalized, "select") {
		return Verdict{Safe: false, Reason: "only SELECT statements are allowed"}
	}

	for _, keyword := range denylist {
		if strings.Contains(normalized, keyword) {
			return Verdict{
				Safe:   false,
				Reason: fmt.Sprintf("statement contains denylisted keyword %q", keyword),
			}
		}
	}

	return Verdict{Safe: true}
}
