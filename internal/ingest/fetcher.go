package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
	pkghttp "github.com/myebookchess-cloud/jyro-demo/pkg/http"
)

// SiteFetcher retrieves and sanitizes the visible text of a web page.
type SiteFetcher struct {
	cfg    config.FetchConfig
	client *http.Client
	logger *zap.Logger
}

func NewSiteFetcher(cfg config.FetchConfig, logger *zap.Logger) *SiteFetcher {
	return &SiteFetcher{
		cfg: cfg,
		client: pkghttp.NewClient(
			pkghttp.WithRequestTimeout(cfg.Timeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		),
		logger: logger,
	}
}

// FetchSite issues a single GET against url and returns the sanitized page
// text. There are no retries: a failed fetch is reported immediately as an
// *entity.FetchError so the caller can surface the cause to the user.
func (f *SiteFetcher) FetchSite(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &entity.FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	text, err := SanitizeHTML(string(body))
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}

	f.logger.Debug("fetched site text",
		zap.String("url", url),
		zap.Int("body_bytes", len(body)),
		zap.Int("text_chars", len(text)),
	)

	return text, nil
}
