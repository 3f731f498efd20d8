package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultDescriptionLength is the truncation limit used by product cards.
const DefaultDescriptionLength = 100

// FormatPrice renders a price in Brazilian Real notation: "R$ 1.234,56".
func FormatPrice(price float64) string {
	cents := int64(math.Round(price * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("R$ ")
	b.WriteString(groupThousands(cents / 100))
	b.WriteByte(',')

	frac := cents % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCategory title-cases a category name: "men's clothing" becomes
// "Men's Clothing".
func FormatCategory(category string) string {
	words := strings.Split(category, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// TruncateDescription shortens a description to maxLength characters,
// appending an ellipsis when it was cut. A non-positive maxLength uses
// DefaultDescriptionLength.
func TruncateDescription(description string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultDescriptionLength
	}

	runes := []rune(description)
	if len(runes) <= maxLength {
		return description
	}
	return string(runes[:maxLength]) + "..."
}
