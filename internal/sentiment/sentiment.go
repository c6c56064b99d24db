// Package sentiment оценивает тональность текста по словарям.
//
// Это грубая эвристика: считаются вхождения подстрок без учёта границ слов,
// поэтому "unapproved" засчитывается и как "approved".
package sentiment

import (
	"strings"

	"media_monitor/internal/models"
)

// Positive - сигналы позитивной тональности: общие слова, финансы, регуляторика, клиника.
var Positive = []string{
	// zh
	"增长", "提升", "突破", "成功", "批准", "获得", "积极", "良好",
	"强劲", "超预期", "利好", "上涨", "显著", "创新", "领先", "优秀",
	"卓越", "进展", "里程碑", "认可", "受理", "达到主要终点",
	// en
	"growth", "breakthrough", "success", "approval", "approved", "positive",
	"strong", "beat", "exceeds", "surge", "record", "milestone", "innovative",
	"recognition", "award", "efficacy", "designation", "partnership", "expands",
}

// Negative - сигналы негативной тональности.
var Negative = []string{
	// zh
	"下跌", "失败", "风险", "问题", "延迟", "拒绝", "担忧", "下降",
	"挫折", "困难", "警告", "亏损", "暂停", "撤回", "质疑", "争议",
	// en
	"decline", "fail", "risk", "delay", "reject", "concern", "drop",
	"setback", "warning", "loss", "suspend", "withdraw", "lawsuit",
	"recall", "adverse", "halt", "downgrade", "investigation",
}

// Classify считает вхождения словарных терминов в текст (без учёта регистра).
// Строго больше позитивных - positive, строго больше негативных - negative, иначе neutral.
func Classify(text string) models.Sentiment {
	lower := strings.ToLower(text)
	pos := countHits(lower, Positive)
	neg := countHits(lower, Negative)

	switch {
	case pos > neg:
		return models.Positive
	case neg > pos:
		return models.Negative
	default:
		return models.Neutral
	}
}

// ClassifyArticle оценивает заголовок вместе с текстом статьи.
func ClassifyArticle(a models.Article) models.Sentiment {
	return Classify(a.Title + " " + a.Content)
}

func countHits(text string, lexicon []string) int {
	n := 0
	for _, term := range lexicon {
		n += strings.Count(text, term)
	}
	return n
}
