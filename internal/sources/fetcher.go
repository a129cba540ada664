package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// UserAgent is sent with market-data requests; tgju refuses default client identifiers.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/128.0"

const maxBody = 4 << 20

// FetchText GETs urlStr with a browser user agent and returns the body.
// The status code is not checked: an error page simply fails extraction later.
func FetchText(ctx context.Context, client *http.Client, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: request for %s: %v", ErrNetwork, urlStr, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request error for %s: %v", ErrNetwork, urlStr, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("%w: read body error for %s: %v", ErrDecode, urlStr, err)
	}
	return string(b), nil
}
