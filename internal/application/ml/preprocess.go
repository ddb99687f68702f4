// Package ml implements the transaction categorization model: text
// preprocessing, TF-IDF vectorization, a bagged decision-tree ensemble, and
// the versioned artifact the trained model is persisted as.
package ml

import "strings"

// preprocessText normalizes a transaction description (and optional merchant
// name) for vectorization: lowercase, strip everything that is not a letter
// or whitespace, collapse whitespace runs.
func preprocessText(description, merchantName string) string {
	text := strings.ToLower(description)

	if merchantName != "" {
		text += " " + strings.ToLower(merchantName)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' || r == '\t' || r == '\n' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
