package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNotifyFailed = errors.New("notify failed")

// StatusError is returned when the bot endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d / body: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrNotifyFailed }

// Notifier posts text to one channel through the Bot API sendMessage method.
type Notifier struct {
	client   *http.Client
	token    string
	chatID   string
	endpoint string
	log      *slog.Logger
}

// NewNotifier uses client for every post. endpoint is a Bot API format string
// such as tgbotapi.APIEndpoint; empty means the public one.
func NewNotifier(client *http.Client, token, chatID, endpoint string, log *slog.Logger) *Notifier {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Notifier{
		client:   client,
		token:    token,
		chatID:   chatID,
		endpoint: endpoint,
		log:      log.With("component", "bot"),
	}
}

// Notify sends text and logs the outcome. It never fails the caller; the
// return value only reports whether Telegram accepted the message.
func (n *Notifier) Notify(ctx context.Context, text string) bool {
	msg, err := n.Send(ctx, text)
	if err == nil {
		n.log.Info("✅ پیام به تلگرام ارسال شد", "message_id", msg.MessageID)
		return true
	}

	var se *StatusError
	var apiErr *tgbotapi.Error
	switch {
	case errors.As(err, &se):
		n.log.Warn("⚠️ تلگرام پاسخ غیرموفق داد", "status", se.Code, "body", se.Body)
	case errors.As(err, &apiErr):
		n.log.Warn("⚠️ تلگرام پاسخ غیرموفق داد", "status", apiErr.Code, "body", apiErr.Message)
	default:
		n.log.Error("❌ خطا در ارسال به تلگرام", "error", n.redact(err))
	}
	return false
}

// Send posts text as a form-encoded chat_id/text pair.
func (n *Notifier) Send(ctx context.Context, text string) (tgbotapi.Message, error) {
	api := &tgbotapi.BotAPI{
		Token:  n.token,
		Client: &statusClient{ctx: ctx, client: n.client},
		Buffer: 100,
	}
	api.SetAPIEndpoint(n.endpoint)

	cfg := tgbotapi.NewMessageToChannel(n.chatID, text)
	return api.Send(cfg)
}

// redact keeps the bot token out of logged transport errors, which embed the URL.
func (n *Notifier) redact(err error) error {
	if n.token == "" {
		return err
	}
	s := err.Error()
	if !strings.Contains(s, n.token) {
		return err
	}
	return errors.New(strings.ReplaceAll(s, n.token, maskSecret(n.token)))
}

func maskSecret(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "…" + s[len(s)-2:]
}

// statusClient binds ctx to Bot API requests and turns non-2xx answers into
// a StatusError carrying as much of the body as could be read.
type statusClient struct {
	ctx    context.Context
	client *http.Client
}

func (c *statusClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req.WithContext(c.ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
