package sheets

import "strings"

// TokenizeLine splits one CSV line into trimmed fields.
//
// A double quote toggles quoted mode and is dropped; commas inside quotes are
// literal. Doubled quotes are not an escape: `"a""b"` reads as `ab`.
func TokenizeLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// TokenizeDocument splits text on newlines, drops blank lines and tokenizes
// the rest. The first returned row is the header.
func TokenizeDocument(text string) [][]string {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, TokenizeLine(line))
	}
	return rows
}
