package ranking_test

import (
	"testing"
	"time"

	"media_monitor/internal/models"
	"media_monitor/internal/ranking"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newRanker() *ranking.Ranker {
	return ranking.New(nil).WithClock(func() time.Time { return now })
}

func TestRank_KeywordAndRecencyWin(t *testing.T) {
	in := []models.Article{
		{
			Title:       "Industry experts praise new platform",
			Content:     "Analysts gave high marks to the company.",
			Platform:    "synthetic",
			PublishTime: now.Add(-7 * 24 * time.Hour),
			Provenance:  models.ProvenanceSynthetic,
		},
		{
			Title:       "Beta opens new research center",
			Content:     "The company expands its footprint.",
			Platform:    "news",
			PublishTime: now.Add(-time.Hour),
			Provenance:  "newsapi",
		},
	}

	out := newRanker().Rank(in, "Beta")
	require.Equal(t, "newsapi", out[0].Provenance)
	require.Greater(t, out[0].RelevanceScore, out[1].RelevanceScore)
}

func TestRank_TitleMatchBeatsNoMatch(t *testing.T) {
	r := newRanker()
	match := models.Article{Title: "Gamma update", PublishTime: now.Add(-100 * time.Hour)}
	miss := models.Article{Title: "Something else", PublishTime: now.Add(-100 * time.Hour)}
	require.Greater(t, r.Score(match, "gamma", now), r.Score(miss, "gamma", now))
}

func TestRank_RecentBeatsStale(t *testing.T) {
	r := newRanker()
	fresh := models.Article{Title: "Gamma update", PublishTime: now.Add(-2 * time.Hour)}
	recent := models.Article{Title: "Gamma update", PublishTime: now.Add(-48 * time.Hour)}
	stale := models.Article{Title: "Gamma update", PublishTime: now.Add(-200 * time.Hour)}

	require.Greater(t, r.Score(fresh, "gamma", now), r.Score(recent, "gamma", now))
	require.Greater(t, r.Score(recent, "gamma", now), r.Score(stale, "gamma", now))
}

func TestRank_DomainVocabularyAndPlatform(t *testing.T) {
	r := newRanker()
	stale := now.Add(-500 * time.Hour)
	onTopic := models.Article{Title: "Clinical trial for new drug", PublishTime: stale}
	offTopic := models.Article{Title: "Weekend weather outlook", PublishTime: stale}
	require.Greater(t, r.Score(onTopic, "x", now), r.Score(offTopic, "x", now))

	gov := models.Article{Title: "Notice", Platform: "government", PublishTime: stale}
	social := models.Article{Title: "Notice", Platform: "social media", PublishTime: stale}
	require.Greater(t, r.Score(gov, "x", now), r.Score(social, "x", now))
}

func TestRank_StableForTies(t *testing.T) {
	stale := now.Add(-500 * time.Hour)
	in := []models.Article{
		{Title: "one", URL: "u1", PublishTime: stale},
		{Title: "two", URL: "u2", PublishTime: stale},
		{Title: "Delta three", URL: "u3", PublishTime: stale},
		{Title: "four", URL: "u4", PublishTime: stale},
	}

	out := newRanker().Rank(in, "delta")
	urls := []string{out[0].URL, out[1].URL, out[2].URL, out[3].URL}
	require.Equal(t, []string{"u3", "u1", "u2", "u4"}, urls)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []models.Article{{Title: "Delta", PublishTime: now}}
	_ = newRanker().Rank(in, "delta")
	require.Zero(t, in[0].RelevanceScore)
}

func TestNew_CustomWeights(t *testing.T) {
	r := ranking.New(map[string]int{"social media": 50}).WithClock(func() time.Time { return now })
	stale := now.Add(-500 * time.Hour)
	social := models.Article{Title: "post", Platform: "social media", PublishTime: stale}
	news := models.Article{Title: "post", Platform: "news", PublishTime: stale}
	require.Greater(t, r.Score(social, "x", now), r.Score(news, "x", now))
}
