package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	sheetIDPattern  = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)
	sheetGIDPattern = regexp.MustCompile(`gid=([0-9]+)`)
)

// SheetCacher caches fetched sheet exports so repeated generations from
// the same link do not hammer the remote endpoint.
type SheetCacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Fetcher loads a publicly shared Google Sheet as CSV.
type Fetcher struct {
	client   *http.Client
	cache    SheetCacher
	cacheTTL time.Duration
	sfGroup  singleflight.Group
	logger   *zap.Logger
}

// NewFetcher creates a sheet fetcher. cache may be nil, in which case
// every call goes to the network.
func NewFetcher(client *http.Client, cache SheetCacher, cacheTTL time.Duration, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("sheet-fetcher"),
	}
}

// ExportURL converts a Google Sheet sharing link into its CSV export
// endpoint. The gid defaults to 0 (the first tab) when absent.
func ExportURL(sheetURL string) (string, error) {
	idMatch := sheetIDPattern.FindStringSubmatch(sheetURL)
	if idMatch == nil {
		return "", fmt.Errorf("%w: could not find the sheet ID", ErrBadSheetURL)
	}

	gid := "0"
	if gidMatch := sheetGIDPattern.FindStringSubmatch(sheetURL); gidMatch != nil {
		gid = gidMatch[1]
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", idMatch[1], gid), nil
}

// FromSheetURL fetches and parses the sheet behind a sharing link. The
// caller controls the overall deadline through ctx.
func (f *Fetcher) FromSheetURL(ctx context.Context, sheetURL string) (*EvaluationTable, error) {
	exportURL, err := ExportURL(sheetURL)
	if err != nil {
		return nil, err
	}

	data, err := f.fetchCSV(ctx, exportURL)
	if err != nil {
		return nil, err
	}

	return ParseCSV(bytes.NewReader(data))
}

func (f *Fetcher) fetchCSV(ctx context.Context, exportURL string) ([]byte, error) {
	if f.cache != nil {
		var cached []byte
		if err := f.cache.Get(ctx, cacheKey(exportURL), &cached); err == nil && len(cached) > 0 {
			f.logger.Debug("sheet cache hit", zap.String("url", exportURL))
			return cached, nil
		}
	}

	// Concurrent generations from the same link share one download.
	v, err, _ := f.sfGroup.Do(exportURL, func() (any, error) {
		return f.download(ctx, exportURL)
	})
	if err != nil {
		return nil, err
	}

	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected fetch result for %q", exportURL)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, cacheKey(exportURL), data, f.cacheTTL); err != nil {
			f.logger.Warn("sheet cache set failed", zap.Error(err))
		}
	}

	return data, nil
}

func (f *Fetcher) download(ctx context.Context, exportURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: export returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	// A private sheet serves the sign-in page instead of CSV.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("%w: sheet is not publicly readable", ErrSourceUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	f.logger.Info("sheet fetched",
		zap.String("url", exportURL),
		zap.Int("bytes", len(data)))

	return data, nil
}

func cacheKey(exportURL string) string {
	return "sheet:" + exportURL
}
