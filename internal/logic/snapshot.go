package logic

import (
	"encoding/json"
	"strings"
)

// ListSeparator delimits multi-select answer values ("a|b|c").
const ListSeparator = "|"

// Snapshot is an immutable view of the answers submitted so far, keyed by
// question id. A key being absent means the question was never reached;
// a key holding a blank value means it was reached but left unanswered.
type Snapshot struct {
	answers map[string]string
}

// NewSnapshot copies the given answer map into an immutable snapshot.
func NewSnapshot(answers map[string]string) Snapshot {
	copied := make(map[string]string, len(answers))
	for id, value := range answers {
		copied[id] = value
	}
	return Snapshot{answers: copied}
}

// Value returns the submitted value for the question and whether the
// question has any entry at all.
func (s Snapshot) Value(questionID string) (string, bool) {
	value, ok := s.answers[questionID]
	return value, ok
}

// Len returns the number of answered questions in the snapshot.
func (s Snapshot) Len() int {
	return len(s.answers)
}

// splitMulti breaks a multi-select answer into its values. Values arrive
// pipe-delimited; JSON arrays are accepted for compatibility with older
// clients.
func splitMulti(value string) []string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return items
		}
	}
	return strings.Split(value, ListSeparator)
}

// isMulti reports whether the answer encodes more than one value.
func isMulti(value string) bool {
	if strings.Contains(value, ListSeparator) {
		return true
	}
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
}
