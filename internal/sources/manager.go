package sources

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Armin-kho/peybot/internal/items"
	"github.com/Armin-kho/peybot/internal/utils"
)

// Manager owns the shared client and the static source list.
type Manager struct {
	client    *http.Client
	endpoints []items.Endpoint
	crossURL  string
	parallel  bool
	log       *slog.Logger
}

type Option func(*Manager)

// WithParallel fetches all market-data pages concurrently. Quotes still
// returns only after every fetch has finished.
func WithParallel(on bool) Option {
	return func(m *Manager) { m.parallel = on }
}

func WithEndpoints(eps []items.Endpoint) Option {
	return func(m *Manager) { m.endpoints = eps }
}

func NewManager(client *http.Client, crossURL string, log *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		endpoints: items.Endpoints(),
		crossURL:  crossURL,
		log:       log.With("component", "sources"),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Quotes fetches every endpoint. Failures are recorded, never returned.
func (m *Manager) Quotes(ctx context.Context) Snapshot {
	type result struct {
		v   int64
		err error
	}
	results := make([]result, len(m.endpoints))

	if m.parallel {
		var g errgroup.Group
		for i, ep := range m.endpoints {
			g.Go(func() error {
				v, err := FetchQuote(ctx, m.client, ep.URL)
				results[i] = result{v, err}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, ep := range m.endpoints {
			v, err := FetchQuote(ctx, m.client, ep.URL)
			results[i] = result{v, err}
		}
	}

	snap := Snapshot{Quotes: map[items.Tag]int64{}, Failed: map[items.Tag]error{}}
	for i, ep := range m.endpoints {
		r := results[i]
		if r.err != nil {
			snap.Failed[ep.Tag] = r.err
			continue
		}
		snap.Quotes[ep.Tag] = r.v
		m.log.Info(string(ep.Tag)+" = "+utils.FormatInt(r.v), "tag", ep.Tag)
	}
	return snap
}

func (m *Manager) CrossRate(ctx context.Context) (float64, error) {
	return FetchCrossRate(ctx, m.client, m.crossURL)
}
