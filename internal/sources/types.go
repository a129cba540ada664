package sources

import (
	"errors"

	"github.com/Armin-kho/peybot/internal/items"
)

var (
	ErrNetwork          = errors.New("network error")
	ErrDecode           = errors.New("decode error")
	ErrParse            = errors.New("parse error")
	ErrSelectorNotFound = errors.New("selector not found")
	ErrUpstreamRejected = errors.New("upstream rejected")
)

// Snapshot holds what one tick managed to collect from the market-data site.
// Quotes are in rials (minor units); Failed records why a tag is missing.
type Snapshot struct {
	Quotes map[items.Tag]int64
	Failed map[items.Tag]error
}

func (s Snapshot) Has(tag items.Tag) bool {
	_, ok := s.Quotes[tag]
	return ok
}
