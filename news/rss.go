package news

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

const (
	feedTimeout        = 30 * time.Second
	articleTimeout     = 10 * time.Second
	perSourceLimit     = 5
	articleUserAgent   = "Mozilla/5.0"
	paragraphSeparator = "\n\n"
)

// aiKeywords gates feed entries: an entry whose title+summary contains none
// of these is not AI news and is skipped before any HTTP fetch happens.
var aiKeywords = []string{
	"artificial intelligence", "ai", "machine learning", "neural network",
	"deep learning", "llm", "gpt", "claude", "anthropic", "openai",
	"transformer", "agi",
}

// Fetcher implements Producer over a fixed catalog of RSS sources. Each
// source pairs a feed URL with the CSS selector locating the article body on
// that site.
type Fetcher struct {
	logger  *mylog.Logger
	sources []config.NewsSource
	parser  *gofeed.Parser
	client  *http.Client
}

var _ Producer = (*Fetcher)(nil)

func NewFetcher(logger *mylog.Logger, sources []config.NewsSource) *Fetcher {
	return &Fetcher{
		logger:  logger,
		sources: sources,
		parser:  gofeed.NewParser(),
		client:  &http.Client{Timeout: articleTimeout},
	}
}

// FetchCandidates reads every source's feed, keeps the first few entries per
// source, filters them down to AI-related ones, and deduplicates by link. A
// source that fails to parse is logged and skipped so one broken feed does
// not starve the rest.
func (f *Fetcher) FetchCandidates(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate
	for _, source := range f.sources {
		items, err := f.readFeed(ctx, source)
		if err != nil {
			f.logger.Warn("failed to read feed", "source", source.Name, "err", err)
			continue
		}
		candidates = append(candidates, items...)
	}

	return lo.UniqBy(candidates, func(c Candidate) string {
		return c.Link
	}), nil
}

func (f *Fetcher) readFeed(ctx context.Context, source config.NewsSource) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, feedTimeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(source.RSSURL, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse feed %s", source.RSSURL)
	}

	entries := feed.Items
	if len(entries) > perSourceLimit {
		entries = entries[:perSourceLimit]
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, item := range entries {
		if item.Link == "" {
			continue
		}
		if !containsAIKeywords(item.Title + " " + item.Description) {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:       item.Title,
			Summary:     item.Description,
			Link:        item.Link,
			Source:      source.Name,
			PublishedAt: item.Published,
		})
	}

	f.logger.Debug("read feed", "source", source.Name, "entries", len(entries), "kept", len(candidates))
	return candidates, nil
}

func containsAIKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range aiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FetchBody downloads the article page and extracts readable text from the
// source's configured body selector. Any failure returns an empty body with
// the error; callers treat an empty body as "omit this article".
func (f *Fetcher) FetchBody(ctx context.Context, candidate Candidate) (string, error) {
	source, ok := lo.Find(f.sources, func(s config.NewsSource) bool {
		return s.Name == candidate.Source
	})
	if !ok {
		return "", errors.Wrapf(errors.ErrNotFound, "no source configured for %q", candidate.Source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.Link, nil)
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("User-Agent", articleUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch article %s", candidate.Link)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d fetching article %s", resp.StatusCode, candidate.Link)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse article %s", candidate.Link)
	}

	return extractBody(doc, source.ArticleSelector), nil
}

// extractBody joins the text of every p and h2 inside the selector, matching
// how the article sites lay out their body copy.
func extractBody(doc *goquery.Document, selector string) string {
	container := doc.Find(selector).First()
	if container.Length() == 0 {
		return ""
	}

	var parts []string
	container.Find("p, h2").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, paragraphSeparator)
}
