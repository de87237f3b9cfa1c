package crawler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/giteki/internal/config"
	"github.com/nao1215/giteki/internal/log"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/nao1215/giteki/internal/model"
)

// Options controls one crawl.
type Options struct {
	// DownloadAll ignores the download targets and follows links to the
	// past-list pages.
	DownloadAll bool

	// Update overwrites spreadsheets that already exist locally.
	Update bool
}

// Crawler walks the equipment list page and downloads the spreadsheets it
// links to.
type Crawler struct {
	fetcher    *Fetcher
	downloader *Downloader
	dir        string
	baseURL    string
	targets    map[string]bool
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithBaseURL sets the prefix joined with relative hrefs.
func WithBaseURL(baseURL string) CrawlerOption {
	return func(c *Crawler) {
		c.baseURL = baseURL
	}
}

// WithDownloadTargets sets the categories downloaded without DownloadAll.
func WithDownloadTargets(targets map[string]bool) CrawlerOption {
	return func(c *Crawler) {
		c.targets = targets
	}
}

// WithUserAgent sets the User-Agent of page and spreadsheet requests.
func WithUserAgent(ua string) CrawlerOption {
	return func(c *Crawler) {
		c.fetcher.userAgent = ua
		c.downloader.userAgent = ua
	}
}

// WithEncoding forces the character encoding of list pages.
func WithEncoding(name string) CrawlerOption {
	return func(c *Crawler) {
		c.fetcher.encoding = name
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithMetrics records page and download outcomes.
func WithMetrics(m *metrics.Metrics) CrawlerOption {
	return func(c *Crawler) {
		c.metrics = m
	}
}

// WithClock overrides the time source of download timestamps.
func WithClock(now func() time.Time) CrawlerOption {
	return func(c *Crawler) {
		c.now = now
	}
}

// NewCrawler creates a Crawler that saves spreadsheets into dir.
// The directory must already exist.
func NewCrawler(client *http.Client, dir string, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetcher:    NewFetcher(client, config.DefaultUserAgent, ""),
		downloader: NewDownloader(client, config.DefaultUserAgent),
		dir:        dir,
		baseURL:    config.DefaultBaseURL,
		targets:    config.DefaultDownloadTargets(),
		logger:     log.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl fetches pageURL and downloads every spreadsheet selected by opts.
// It returns one result per file written, in page order. Failures are
// logged and never abort the crawl; a page that cannot be fetched yields
// no results.
func (c *Crawler) Crawl(ctx context.Context, pageURL string, opts Options) []model.DownloadResult {
	c.logger.Info("start download", "url", pageURL)
	results := make([]model.DownloadResult, 0)

	page, err := c.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		c.metrics.ObservePage(metrics.StatusError)
		c.logger.Error("failed to download: "+err.Error(), "url", pageURL)
		return results
	}
	c.metrics.ObservePage(metrics.StatusOK)

	title, err := page.AdvertisedYear()
	if err != nil {
		c.logger.Error("failed to read title", "url", pageURL, "error", err)
	}
	c.logger.Info("title", "title", title)

	for _, table := range page.Tables() {
		if ctx.Err() != nil {
			c.logger.Error("crawl canceled", "error", ctx.Err())
			break
		}
		c.logger.Info("table", "h2", table.TopCategory, "h3", table.SubCategory)
		if !opts.DownloadAll && !c.targets[table.TopCategory] {
			c.logger.Info("skip")
			continue
		}

		for _, link := range table.Links() {
			results = append(results, c.follow(ctx, link, opts)...)
		}
	}

	c.logger.Info("done download", "url", pageURL, "count", len(results))
	return results
}

// follow handles one link: a sub-index is crawled one level deep, a
// spreadsheet is downloaded unless it already exists.
func (c *Crawler) follow(ctx context.Context, link Link, opts Options) []model.DownloadResult {
	filename := link.Filename()
	c.logger.Info("link", "file", filename, "association", link.Association)

	if link.IsIndex() {
		if !opts.DownloadAll {
			c.logger.Info("skip")
			return nil
		}
		return c.Crawl(ctx, c.resolve(link.URL), Options{DownloadAll: false, Update: opts.Update})
	}

	dst := filepath.Join(c.dir, filename)
	if !opts.Update {
		found, err := exists(dst)
		if err != nil {
			c.logger.Error("failed to stat", "path", dst, "error", err)
		}
		if found {
			c.logger.Info("already exists", "path", dst)
			c.metrics.ObserveDownload(metrics.StatusSkipped)
			return nil
		}
	}

	if err := c.downloader.Download(ctx, c.resolve(link.URL), dst); err != nil {
		c.logger.Error("failed to download xls", "file", filename, "error", err)
		c.metrics.ObserveDownload(metrics.StatusError)
		return nil
	}
	c.metrics.ObserveDownload(metrics.StatusOK)
	c.logger.Info("save to", "path", dst)

	return []model.DownloadResult{model.NewDownloadResult(filename, link.Association, c.now())}
}

// resolve prefixes relative hrefs with the base URL. Absolute URLs are
// returned unchanged.
func (c *Crawler) resolve(href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	return c.baseURL + href
}

// exists reports whether path can be stat'ed. Errors other than a missing
// file are returned so the caller can log them; the file then counts as
// absent and is downloaded again.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
