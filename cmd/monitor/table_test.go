package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"media_monitor/internal/models"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsWideTitles(t *testing.T) {
	published := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	res := &models.AggregateResult{
		Keyword: "天境生物",
		Source:  "rss",
		Total:   2,
		Articles: []models.Article{
			{Title: "天境生物发布三季度业绩，营收显著增长", Source: "新浪财经", PublishTime: published, Sentiment: models.Positive, RelevanceScore: 18},
			{Title: "I-Mab update", Source: "Reuters", PublishTime: published, Sentiment: models.Neutral, RelevanceScore: 7},
		},
		Providers: []models.ProviderOutcome{
			{Name: "rss", Status: models.StatusOK, Count: 2},
			{Name: "newsapi", Status: models.StatusFailed, Err: "provider rate limit exceeded"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, res))

	lines := strings.Split(buf.String(), "\n")
	header, first := lines[0], lines[1]
	titleCol := runewidth.StringWidth(header[:strings.Index(header, "TITLE")])
	require.Equal(t, titleCol, runewidth.StringWidth(first[:strings.Index(first, "天境生物发布")]))

	out := buf.String()
	require.Contains(t, out, "source: rss")
	require.Contains(t, out, "provider rate limit exceeded")
	require.NotContains(t, out, "note:")
}

func TestRenderTable_TruncatesLongTitles(t *testing.T) {
	res := &models.AggregateResult{
		Keyword:  "Alpha",
		Source:   models.ProvenanceSynthetic,
		Fallback: true,
		Note:     "fallback",
		Articles: []models.Article{{Title: strings.Repeat("很长的标题", 30), Source: "x", Sentiment: models.Neutral}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, res))
	require.Contains(t, buf.String(), "…")
	require.Contains(t, buf.String(), "note: fallback")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderTable_WriteError(t *testing.T) {
	res := &models.AggregateResult{
		Keyword:   "I-Mab",
		Source:    "synthetic",
		Note:      "fallback",
		Providers: []models.ProviderOutcome{{Name: "rss", Status: models.StatusEmpty}},
	}
	require.EqualError(t, renderTable(failingWriter{}, res), "broken pipe")
}
