package news_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/news"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test RSS feed</description>
    %s
  </channel>
</rss>`

func feedItem(title, link, description string) string {
	return fmt.Sprintf(`<item>
      <title>%s</title>
      <link>%s</link>
      <description>%s</description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>`, title, link, description)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func serveFeed(t *testing.T, items ...string) *httptest.Server {
	t.Helper()
	body := ""
	for _, item := range items {
		body += item + "\n"
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, feedTemplate, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchCandidates_KeepsOnlyAIRelatedEntries(t *testing.T) {
	server := serveFeed(t,
		feedItem("OpenAI ships a new model", "https://example.com/1", "The LLM got better."),
		feedItem("Quarterly earnings roundup", "https://example.com/2", "Markets were flat."),
		feedItem("Robots and machine learning", "https://example.com/3", "A lab result."),
	)

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "TestSource", RSSURL: server.URL, ArticleSelector: "div.article-content"},
	})

	candidates, err := fetcher.FetchCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "https://example.com/1", candidates[0].Link)
	assert.Equal(t, "https://example.com/3", candidates[1].Link)
	assert.Equal(t, "TestSource", candidates[0].Source)
}

func TestFetchCandidates_LimitsEntriesPerSource(t *testing.T) {
	var items []string
	for i := 1; i <= 8; i++ {
		items = append(items, feedItem(
			fmt.Sprintf("AI update %d", i),
			fmt.Sprintf("https://example.com/%d", i),
			"machine learning news",
		))
	}
	server := serveFeed(t, items...)

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "TestSource", RSSURL: server.URL},
	})

	candidates, err := fetcher.FetchCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 5)
}

func TestFetchCandidates_DeduplicatesByLink(t *testing.T) {
	itemA := feedItem("OpenAI ships a new model", "https://example.com/1", "LLM news.")
	serverA := serveFeed(t, itemA)
	serverB := serveFeed(t, itemA)

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "SourceA", RSSURL: serverA.URL},
		{Name: "SourceB", RSSURL: serverB.URL},
	})

	candidates, err := fetcher.FetchCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestFetchCandidates_SkipsBrokenSource(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)
	good := serveFeed(t, feedItem("Anthropic research note", "https://example.com/1", "AI safety."))

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "Broken", RSSURL: broken.URL},
		{Name: "Good", RSSURL: good.URL},
	})

	candidates, err := fetcher.FetchCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Good", candidates[0].Source)
}

func TestFetchBody_ExtractsParagraphsAndHeadings(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `<html><body>
			<div class="article-content">
				<p>First paragraph.</p>
				<h2>Section heading</h2>
				<p>Second paragraph.</p>
				<script>ignored()</script>
			</div>
			<div class="sidebar"><p>Unrelated.</p></div>
		</body></html>`)
	}))
	t.Cleanup(article.Close)

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "TestSource", RSSURL: "https://unused.example.com/feed", ArticleSelector: "div.article-content"},
	})

	body, err := fetcher.FetchBody(context.Background(), news.Candidate{
		Link:   article.URL,
		Source: "TestSource",
	})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSection heading\n\nSecond paragraph.", body)
}

func TestFetchBody_MissingSelectorYieldsEmptyBody(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>No matching container here.</p></body></html>`)
	}))
	t.Cleanup(article.Close)

	fetcher := news.NewFetcher(testLogger(), []config.NewsSource{
		{Name: "TestSource", RSSURL: "https://unused.example.com/feed", ArticleSelector: "div.article-content"},
	})

	body, err := fetcher.FetchBody(context.Background(), news.Candidate{Link: article.URL, Source: "TestSource"})
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetchBody_UnknownSource(t *testing.T) {
	fetcher := news.NewFetcher(testLogger(), nil)
	_, err := fetcher.FetchBody(context.Background(), news.Candidate{Link: "https://example.com/1", Source: "Nope"})
	assert.Error(t, err)
}
