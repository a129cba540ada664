package items

// Tag identifies one of the published currencies.
type Tag string

const (
	USD Tag = "USD"
	EUR Tag = "EUR"
	AED Tag = "AED"
	CNY Tag = "CNY"
)

type Item struct {
	Tag Tag

	NameFa string
	Emoji  string

	// SourceURL is the tgju.org profile page carrying the rial price.
	SourceURL string
}

// All is the closed catalog in display order.
var All = []Item{
	{Tag: USD, NameFa: "دلار", Emoji: "💵", SourceURL: "https://www.tgju.org/profile/price_dollar_rl"},
	{Tag: EUR, NameFa: "یورو", Emoji: "💶", SourceURL: "https://www.tgju.org/profile/price_eur"},
	{Tag: AED, NameFa: "درهم", Emoji: "🇦🇪", SourceURL: "https://www.tgju.org/profile/price_aed"},
	{Tag: CNY, NameFa: "یوآن چین", Emoji: "🇨🇳", SourceURL: "https://www.tgju.org/profile/sana_sell_cny"},
}

// Lira is not scraped; it is derived from USD and the USDT/TRY cross-rate.
var Lira = struct {
	NameFa string
	Emoji  string
}{NameFa: "لیر ترکیه", Emoji: "🇹🇷"}

// Endpoint pairs a tag with the page its price is scraped from.
type Endpoint struct {
	Tag Tag
	URL string
}

// Endpoints returns the static source list in catalog order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(All))
	for _, it := range All {
		out = append(out, Endpoint{Tag: it.Tag, URL: it.SourceURL})
	}
	return out
}
