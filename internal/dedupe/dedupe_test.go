package dedupe_test

import (
	"testing"

	"media_monitor/internal/dedupe"
	"media_monitor/internal/models"

	"github.com/stretchr/testify/require"
)

func titles(articles []models.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func TestDedupe_SameURL(t *testing.T) {
	d := dedupe.New(20)
	in := []models.Article{
		{Title: "Beta raises Series B", URL: "https://x.test/a1", Provenance: "newsapi"},
		{Title: "Completely different headline", URL: "https://x.test/a1", Provenance: "gnews"},
	}

	out := d.Dedupe(in)
	require.Len(t, out, 1)
	require.Equal(t, "newsapi", out[0].Provenance)
}

func TestDedupe_TitlePrefix(t *testing.T) {
	d := dedupe.New(20)
	in := []models.Article{
		{Title: "Felzartamab receives FDA Breakthrough Therapy designation", Provenance: "rss"},
		{Title: "FELZARTAMAB   receives fda breakthrough status", Provenance: "gnews"},
	}

	out := d.Dedupe(in)
	require.Len(t, out, 1)
	require.Equal(t, "rss", out[0].Provenance)
}

func TestDedupe_TitlePrefixAcrossDifferentURLs(t *testing.T) {
	d := dedupe.New(10)
	in := []models.Article{
		{Title: "I-Mab expands Shanghai site", URL: "https://a.test/1"},
		{Title: "i-mab expa nds operations", URL: "https://b.test/2"},
	}
	require.Len(t, d.Dedupe(in), 1)
}

func TestDedupe_KeepsOrderOfSurvivors(t *testing.T) {
	d := dedupe.New(20)
	in := []models.Article{
		{Title: "first story", URL: "https://x.test/1"},
		{Title: "second story", URL: "https://x.test/2"},
		{Title: "first story", URL: "https://x.test/3"},
		{Title: "third story", URL: "https://x.test/1"},
		{Title: "fourth story"},
	}

	out := d.Dedupe(in)
	require.Equal(t, []string{"first story", "second story", "fourth story"}, titles(out))
}

func TestDedupe_Empty(t *testing.T) {
	require.Empty(t, dedupe.New(20).Dedupe(nil))
}

func TestTitleKey(t *testing.T) {
	d := dedupe.New(5)
	require.Equal(t, "abcde", d.TitleKey("A b C\tD e F G"))
	require.Equal(t, "天境生物q", d.TitleKey("天境 生物 Q3财报"))
	require.Equal(t, "ab", d.TitleKey("ab"))

	require.Equal(t, 20, len(dedupe.New(0).TitleKey("abcdefghijklmnopqrstuvwxyz")))
}
