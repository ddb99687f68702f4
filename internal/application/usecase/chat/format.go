// Package chat contains the per-message conversation orchestrator and its
// intent response builders.
package chat

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// formatMoney renders an amount as a dollar figure with thousands
// separators and two decimal places, e.g. "$1,234.56".
func formatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("$")
	b.WriteString(sign)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)

	return b.String()
}

// categoryLabel turns a category value into display form, e.g.
// "food_dining" becomes "Food Dining".
func categoryLabel(category entity.TransactionCategory) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
