package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

type btcturkTicker struct {
	Success bool `json:"success"`
	Data    []struct {
		Pair string  `json:"pair"`
		Last float64 `json:"last"`
	} `json:"data"`
}

// FetchCrossRate returns the last USDT/TRY trade price from the BTCTurk ticker.
func FetchCrossRate(ctx context.Context, client *http.Client, urlStr string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: BTCTurk request: %v", ErrNetwork, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: BTCTurk request error: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, fmt.Errorf("%w: BTCTurk read body error: %v", ErrDecode, err)
	}
	return decodeCrossRate(body)
}

func decodeCrossRate(body []byte) (float64, error) {
	var t btcturkTicker
	if err := json.Unmarshal(body, &t); err != nil {
		return 0, fmt.Errorf("%w: BTCTurk json parse error: %v / body: %s", ErrParse, err, snippet(body, 200))
	}
	if !t.Success || len(t.Data) == 0 {
		return 0, fmt.Errorf("%w: BTCTurk responded with success=false or empty data", ErrUpstreamRejected)
	}
	return t.Data[0].Last, nil
}

// snippet returns at most n bytes of b without splitting a UTF-8 sequence.
func snippet(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n])
}
