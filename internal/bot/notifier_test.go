package bot

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPost struct {
	path        string
	contentType string
	form        url.Values
}

func botServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedPost) {
	t.Helper()
	var mu sync.Mutex
	var posts []capturedPost
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		mu.Lock()
		posts = append(posts, capturedPost{
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			form:        r.PostForm,
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &posts
}

func newTestNotifier(srv *httptest.Server, buf *bytes.Buffer) *Notifier {
	log := slog.New(slog.NewTextHandler(buf, nil))
	return NewNotifier(srv.Client(), "123456:SECRET", "@peyrates", srv.URL+"/bot%s/%s", log)
}

const okBody = `{"ok":true,"result":{"message_id":42,"date":1700000000,"chat":{"id":-1001,"type":"channel"},"text":"hi"}}`

func TestNotifySuccess(t *testing.T) {
	srv, posts := botServer(t, http.StatusOK, okBody)
	var logs bytes.Buffer
	n := newTestNotifier(srv, &logs)

	ok := n.Notify(context.Background(), "سلام\nline two")
	require.True(t, ok)

	require.Len(t, *posts, 1)
	p := (*posts)[0]
	assert.Equal(t, "/bot123456:SECRET/sendMessage", p.path)
	assert.Equal(t, "application/x-www-form-urlencoded", p.contentType)
	assert.Equal(t, "@peyrates", p.form.Get("chat_id"))
	assert.Equal(t, "سلام\nline two", p.form.Get("text"))
	assert.Contains(t, logs.String(), "message_id=42")
}

func TestSendNumericChannelID(t *testing.T) {
	srv, posts := botServer(t, http.StatusOK, okBody)
	n := NewNotifier(srv.Client(), "t0ken", "-1001234567890", srv.URL+"/bot%s/%s", slog.Default())

	msg, err := n.Send(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 42, msg.MessageID)
	assert.Equal(t, "-1001234567890", (*posts)[0].form.Get("chat_id"))
}

func TestNotifyNon2xx(t *testing.T) {
	srv, _ := botServer(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	var logs bytes.Buffer
	n := newTestNotifier(srv, &logs)

	assert.False(t, n.Notify(context.Background(), "x"))
	out := logs.String()
	assert.Contains(t, out, "status=400")
	assert.Contains(t, out, "chat not found")

	_, err := n.Send(context.Background(), "x")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.ErrorIs(t, err, ErrNotifyFailed)
}

func TestNotifyTransportErrorRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/bot%s/%s"
	srv.Close()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	n := NewNotifier(http.DefaultClient, "123456:SECRET", "@c", endpoint, log)

	assert.False(t, n.Notify(context.Background(), "x"))
	out := logs.String()
	assert.Contains(t, out, "level=ERROR")
	assert.NotContains(t, out, "123456:SECRET")
}

func TestNotifyCancelledContext(t *testing.T) {
	srv, posts := botServer(t, http.StatusOK, okBody)
	var logs bytes.Buffer
	n := newTestNotifier(srv, &logs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, n.Notify(ctx, "x"))
	assert.Empty(t, *posts)
}

func TestNewNotifierDefaultEndpoint(t *testing.T) {
	n := NewNotifier(http.DefaultClient, "t", "c", "", slog.Default())
	assert.Equal(t, "https://api.telegram.org/bot%s/%s", n.endpoint)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "******", maskSecret("abc"))
	assert.Equal(t, "123…ET", maskSecret("123456:SECRET"))
}
