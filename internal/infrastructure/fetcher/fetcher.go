package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"fedwatch/internal/domain"
	"fedwatch/internal/ports"
)

const urlDateLayout = "20060102"

// spec ties one document type to its URL template and content selector.
// The template takes the 8-digit probe date.
type spec struct {
	urlPath string
	extract func(doc *goquery.Document) string
}

var specs = map[domain.DocumentType]spec{
	domain.DocStatement:          {"/newsevents/pressreleases/monetary%sa.htm", extractStatement},
	domain.DocMinutes:            {"/monetarypolicy/fomcminutes%s.htm", extractMinutes},
	domain.DocProjectionNote:     {"/monetarypolicy/fomcprojtabl%s.htm", extractProjection},
	domain.DocImplementationNote: {"/newsevents/pressreleases/monetary%sa1.htm", extractImplementation},
}

// Client probes the Federal Reserve site for the four communication types.
// Probes are pure reads; dating authority belongs to the canonical URL the
// source reports, never to the requested date hint.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.DocumentFetcher = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets sane defaults.
func NewClient(baseURL string, client *http.Client, timeout time.Duration, log *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: baseURL, client: client, timeout: timeout, logger: log}
}

// FetchAll probes every document type concurrently. Each probe runs under its
// own timeout so one hung source cannot block the others. Failures degrade to
// absent results; the returned set always carries all four types.
func (c *Client) FetchAll(ctx context.Context, hint time.Time) (domain.FetchSet, error) {
	if hint.IsZero() {
		hint = time.Now().UTC()
	}
	dateStr := hint.UTC().Format(urlDateLayout)

	types := domain.DocumentTypes()
	results := make([]domain.FetchResult, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			results[i] = c.fetchOne(gctx, t, dateStr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(domain.FetchSet, len(results))
	for _, r := range results {
		set[r.Type] = r
	}
	return set, nil
}

func (c *Client) fetchOne(ctx context.Context, t domain.DocumentType, dateStr string) domain.FetchResult {
	sp := specs[t]
	probeURL := c.baseURL + fmt.Sprintf(sp.urlPath, dateStr)
	absent := domain.FetchResult{Type: t, SourceURL: probeURL}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		c.warn("build request", t, err)
		return absent
	}
	req.Header.Set("User-Agent", "fedwatch/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		c.warn("request document", t, err)
		return absent
	}
	defer resp.Body.Close()

	// 404 means not yet published, not a failure.
	if resp.StatusCode == http.StatusNotFound {
		return absent
	}
	if resp.StatusCode != http.StatusOK {
		c.warn("fetch document", t, fmt.Errorf("source returned %s", resp.Status))
		return absent
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.warn("parse document", t, err)
		return absent
	}

	canonical := canonicalURL(doc, probeURL)
	releaseDate := dateFromURL(canonical)
	if releaseDate.IsZero() {
		return absent
	}

	return domain.FetchResult{
		Type:        t,
		Body:        sp.extract(doc),
		SourceURL:   canonical,
		ReleaseDate: releaseDate,
	}
}

func (c *Client) warn(msg string, t domain.DocumentType, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, "type", string(t), "error", err)
	}
}
