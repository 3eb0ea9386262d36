package interchange

import (
	"fmt"
	"strings"
)

// Issue describes one offending entry of an import document. Index is -1
// for problems that concern a whole collection or the document itself.
type Issue struct {
	Collection string `json:"collection,omitempty"`
	Index      int    `json:"index"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Collection != "" {
		b.WriteString(i.Collection)
		if i.Index >= 0 {
			fmt.Fprintf(&b, "[%d]", i.Index)
		}
		if i.Field != "" {
			b.WriteString("." + i.Field)
		}
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

// MalformedImportError rejects an import document. Nothing is applied when it
// is returned.
type MalformedImportError struct {
	Issues []Issue
}

func (e *MalformedImportError) Error() string {
	if len(e.Issues) == 0 {
		return "malformed import"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "malformed import: " + strings.Join(parts, "; ")
}
