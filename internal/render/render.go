package render

import (
	"strings"

	"github.com/Armin-kho/peybot/internal/items"
	"github.com/Armin-kho/peybot/internal/rates"
	"github.com/Armin-kho/peybot/internal/utils"
)

const (
	header = "📊 نرخ لحظه‌ای ارز (به تومان):"
	footer = "🔄 به‌روزرسانی هر ۱ دقیقه"
	unit   = "تومان"
)

// BuildMessage renders the channel post. Currencies missing from res are
// skipped; order follows the catalog. A non-empty signature becomes the last line.
func BuildMessage(res rates.Result, signature string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, it := range items.All {
		v, ok := res.Display[it.Tag]
		if !ok {
			continue
		}
		b.WriteString(line(it.Emoji, it.NameFa, v))
	}

	b.WriteString("\n")
	b.WriteString(line(items.Lira.Emoji, items.Lira.NameFa, res.Lira))

	b.WriteString("\n")
	b.WriteString(footer)
	b.WriteString("\n")
	if signature != "" {
		b.WriteString("\n")
		b.WriteString(signature)
	}
	return b.String()
}

func line(emoji, name string, v int64) string {
	return emoji + " " + name + ": " + utils.FormatInt(v) + " " + unit + "\n"
}
