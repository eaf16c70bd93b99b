package runner

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/config"
	"github.com/preston-bernstein/permit-availability/internal/credentials"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
	"github.com/preston-bernstein/permit-availability/internal/providers"
	"github.com/preston-bernstein/permit-availability/internal/providers/fixture"
	"github.com/preston-bernstein/permit-availability/internal/providers/wildtrails"
)

var resolveCookie = credentials.Resolve

// sourceFactory assembles the source with shared wrappers (rate limit + instrumentation).
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	opts    Options
}

func newSourceFactory(logger *slog.Logger, recorder *metrics.Recorder, opts Options) sourceFactory {
	return sourceFactory{logger: logger, metrics: recorder, opts: opts}
}

func (f sourceFactory) build(cfg config.Config) (providers.Source, error) {
	base, err := f.selectSource(cfg)
	if err != nil {
		return nil, err
	}
	limited := providers.NewRateLimitedSource(base, cfg.Upstream.RateLimit, f.logger)
	return providers.NewInstrumentedSource(limited, f.logger, f.metrics, normalizeSourceName(cfg.Source, base)), nil
}

func (f sourceFactory) selectSource(cfg config.Config) (providers.Source, error) {
	switch cfg.Source {
	case config.SourceFixture:
		if !f.opts.Today.IsZero() {
			today := f.opts.Today
			return fixture.NewAt(func() time.Time { return today }), nil
		}
		return fixture.New(), nil
	case config.SourceWildtrails, "":
		cookie, err := resolveCookie()
		if err != nil {
			return nil, fmt.Errorf("resolve cookie: %w", err)
		}
		client := f.opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.Upstream.HTTPTimeout}
		}
		return wildtrails.NewClient(wildtrails.Config{
			BaseURL:    cfg.Upstream.BaseURL,
			Cookie:     cookie,
			HTTPClient: client,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
