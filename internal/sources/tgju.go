package sources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const priceSelector = ".top-mobile-block .block-last-change-percentage .price"

// tgju groups digits with commas and may put a ZWNJ before the currency glyph.
var priceCleaner = strings.NewReplacer(",", "", " ", "", "\u200c", "")

// ExtractPrice pulls the headline rial price out of a tgju profile page.
func ExtractPrice(body string) (int64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: html: %v", ErrParse, err)
	}
	sel := doc.Find(priceSelector).First()
	if sel.Length() == 0 {
		return 0, ErrSelectorNotFound
	}
	return ParsePrice(sel.Text())
}

// ParsePrice normalizes the visible price text and parses it as a
// non-negative integer.
func ParsePrice(raw string) (int64, error) {
	clean := priceCleaner.Replace(strings.TrimSpace(raw))
	v, err := strconv.ParseUint(clean, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: parse int error for '%s': %v", ErrParse, clean, err)
	}
	return int64(v), nil
}

// FetchQuote fetches one profile page and extracts its price.
func FetchQuote(ctx context.Context, client *http.Client, urlStr string) (int64, error) {
	body, err := FetchText(ctx, client, urlStr)
	if err != nil {
		return 0, err
	}
	v, err := ExtractPrice(body)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", urlStr, err)
	}
	return v, nil
}
