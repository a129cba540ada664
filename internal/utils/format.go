package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var enPrinter = message.NewPrinter(language.English)

// FormatInt renders n with English digit groups, e.g. 1050000 -> "1,050,000".
func FormatInt(n int64) string {
	return enPrinter.Sprintf("%d", n)
}
