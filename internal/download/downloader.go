// Package download pulls emoji image assets to local files, one at a
// time, under a fixed request-rate ceiling.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/M3t0r/slack-emoji/internal/domain"
)

const (
	assetTimeout      = 15 * time.Second
	requestsPerSecond = 20
)

// ProgressFunc reports batch progress: called once per processed
// asset, skips and failures included.
type ProgressFunc func(done, total int)

type Downloader struct {
	http    *http.Client
	limiter *rate.Limiter

	// Force re-downloads assets whose destination already exists.
	Force bool
	// Progress, when set, is invoked after every asset.
	Progress ProgressFunc
}

// New returns a downloader paced at 20 requests per second. Burst 1
// keeps the limiter on a monotonically advancing next-allowed-instant,
// so spacing stays even across the whole batch instead of drifting.
// The limiter is only consulted before a real request; a run that
// skips everything sleeps for nothing.
func New() *Downloader {
	return &Downloader{
		http:    &http.Client{Timeout: assetTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second/requestsPerSecond), 1),
	}
}

// Run fetches every asset in list order. A failing asset is logged and
// skipped; nothing aborts the batch and nothing is retried. Run
// returns how many assets failed.
func (d *Downloader) Run(ctx context.Context, assets []domain.Asset) int {
	failed := 0
	for i, asset := range assets {
		if err := d.fetch(ctx, asset); err != nil {
			log.Error().Err(err).Str("emoji", asset.Name).Str("path", asset.Path).Msg("download failed")
			failed++
		}
		if d.Progress != nil {
			d.Progress(i+1, len(assets))
		}
	}
	return failed
}

func (d *Downloader) fetch(ctx context.Context, asset domain.Asset) error {
	if !d.Force {
		if exists, err := asset.Exist(); err == nil && exists {
			log.Debug().Str("path", asset.Path).Msg("already downloaded")
			return nil
		}
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}
	log.Debug().Str("url", asset.URL).Msg("downloading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return fmt.Errorf("create request for %q: %w", asset.URL, err)
	}

	res, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %q: %w", asset.URL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("request %q: unexpected status %d", asset.URL, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body of %q: %w", asset.URL, err)
	}

	if err := os.WriteFile(asset.Path, data, 0o644); err != nil {
		// don't leave a truncated image behind
		if rmErr := os.Remove(asset.Path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Debug().Err(rmErr).Str("path", asset.Path).Msg("could not remove partial file")
		}
		return fmt.Errorf("write %q: %w", asset.Path, err)
	}
	return nil
}
