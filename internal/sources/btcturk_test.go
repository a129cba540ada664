package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickerServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCrossRate(t *testing.T) {
	srv := tickerServer(t, http.StatusOK,
		`{"success":true,"message":null,"code":0,"data":[{"pair":"USDTTRY","last":34.2,"volume":1},{"pair":"X","last":1}]}`)

	v, err := FetchCrossRate(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.InDelta(t, 34.2, v, 1e-12)
}

func TestFetchCrossRateRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"success false", `{"success": false, "data": []}`},
		{"success false with data", `{"success": false, "data": [{"last": 30}]}`},
		{"empty data", `{"success": true, "data": []}`},
		{"missing data", `{"success": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tickerServer(t, http.StatusOK, tt.body)
			_, err := FetchCrossRate(context.Background(), srv.Client(), srv.URL)
			assert.ErrorIs(t, err, ErrUpstreamRejected)
		})
	}
}

func TestFetchCrossRateMalformed(t *testing.T) {
	srv := tickerServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	_, err := FetchCrossRate(context.Background(), srv.Client(), srv.URL)
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestFetchCrossRateNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := FetchCrossRate(context.Background(), http.DefaultClient, url)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchCrossRateMalformedMultibyteBody(t *testing.T) {
	// 'x' shifts every two-byte rune so byte 200 falls inside one.
	body := "x" + strings.Repeat("خطا", 100)
	srv := tickerServer(t, http.StatusServiceUnavailable, body)

	_, err := FetchCrossRate(context.Background(), srv.Client(), srv.URL)
	require.ErrorIs(t, err, ErrParse)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "xخطا")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", snippet([]byte("abc"), 200))
	assert.Equal(t, "ab", snippet([]byte("abcdef"), 2))
	// "د" is two bytes; cutting at 2 would split the second rune.
	assert.Equal(t, "x", snippet([]byte("xدد"), 2))
	assert.Equal(t, "xد", snippet([]byte("xدد"), 3))
}
