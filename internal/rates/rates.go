package rates

import (
	"errors"
	"fmt"
	"math"

	"github.com/Armin-kho/peybot/internal/items"
	"github.com/Armin-kho/peybot/internal/sources"
)

var ErrInvalidInput = errors.New("invalid input")

// Result is what the message is built from, in tomans.
type Result struct {
	Display map[items.Tag]int64
	Lira    int64
}

// LiraPrice converts the USD rial quote and the USDT/TRY rate into tomans per
// lira, rounded up. Results beyond int64 are undefined; real values are < 1e6.
func LiraPrice(usdRial int64, usdtTry float64) (int64, error) {
	if math.IsNaN(usdtTry) || usdtTry <= 0 {
		return 0, fmt.Errorf("%w: cross-rate %v", ErrInvalidInput, usdtTry)
	}
	return int64(math.Ceil(float64(usdRial) / usdtTry / 10)), nil
}

// Toman truncates a rial quote to tomans.
func Toman(rial int64) int64 {
	return rial / 10
}

// Convert needs a USD quote in snap and a positive cross-rate.
func Convert(snap sources.Snapshot, usdtTry float64) (Result, error) {
	usd, ok := snap.Quotes[items.USD]
	if !ok {
		return Result{}, fmt.Errorf("%w: no USD quote", ErrInvalidInput)
	}
	lira, err := LiraPrice(usd, usdtTry)
	if err != nil {
		return Result{}, err
	}
	display := make(map[items.Tag]int64, len(snap.Quotes))
	for tag, v := range snap.Quotes {
		display[tag] = Toman(v)
	}
	return Result{Display: display, Lira: lira}, nil
}
