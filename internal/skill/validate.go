package skill

import (
	"fmt"
	"strings"
)

// ValidationError reports why a document batch was rejected. The batch is
// all-or-nothing: a single bad document invalidates the whole load.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid document batch: " + e.Issues[0]
	}
	return fmt.Sprintf("invalid document batch (%d issues): %s",
		len(e.Issues), strings.Join(e.Issues, "; "))
}

// ValidateBatch checks a document batch for duplicate IDs and missing
// required fields. Returns a *ValidationError listing every issue found,
// or nil if the batch is acceptable.
func ValidateBatch(docs []Document) error {
	var issues []string
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			issues = append(issues, fmt.Sprintf("document %q has no id", d.Name))
		} else if prev, ok := seen[d.ID]; ok {
			issues = append(issues, fmt.Sprintf("duplicate id %q (documents %q and %q)", d.ID, prev, d.Name))
		} else {
			seen[d.ID] = d.Name
		}
		if strings.TrimSpace(d.Name) == "" {
			issues = append(issues, fmt.Sprintf("document %q has no name", d.ID))
		}
		if strings.TrimSpace(d.Description) == "" {
			issues = append(issues, fmt.Sprintf("document %q has no description", d.ID))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
