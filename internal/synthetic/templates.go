package synthetic

import "media_monitor/internal/models"

type template struct {
	title     string
	source    string
	platform  string
	sentiment models.Sentiment
	content   string
	baseURL   string
}

// knownTemplates - заготовки для приоритетных ключевых слов. Ключ в нижнем регистре.
var knownTemplates = map[string][]template{
	"天境生物": {
		{
			title:     "天境生物Q3财报超预期，核心产品销售强劲增长35%",
			source:    "医药经济报",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "天境生物发布第三季度财务业绩，多个核心产品销售表现超出市场预期，显示出强劲的商业化能力。",
			baseURL:   "https://www.pharmadl.com",
		},
		{
			title:     "天境生物与全球制药巨头签署10亿美元战略合作协议",
			source:    "生物谷",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "此次合作将加速天境生物产品的全球化布局，预计将在未来5年内带来显著收益。",
			baseURL:   "https://www.bioon.com",
		},
		{
			title:     "天境生物创新药获FDA快速通道认定",
			source:    "药明康德",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "FDA授予天境生物创新药物快速通道认定，有望加速审批进程。",
			baseURL:   "https://www.wuxiapptec.com",
		},
	},
	"i-mab": {
		{
			title:     "I-Mab announces positive Phase III trial results for lead candidate",
			source:    "BioPharma Dive",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "I-Mab's lead oncology candidate demonstrates significant efficacy in late-stage clinical trial.",
			baseURL:   "https://www.biopharmadive.com",
		},
		{
			title:     "I-Mab expands manufacturing capabilities with new Shanghai facility",
			source:    "Fierce Biotech",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "The new facility will support I-Mab's growing product pipeline and commercial operations.",
			baseURL:   "https://www.fiercebiotech.com",
		},
	},
	"菲泽妥单抗": {
		{
			title:     "菲泽妥单抗获得国家药监局优先审评资格",
			source:    "NMPA官网",
			platform:  "government",
			sentiment: models.Positive,
			content:   "国家药品监督管理局将菲泽妥单抗纳入优先审评品种，预计审评时间将大幅缩短。",
			baseURL:   "https://www.nmpa.gov.cn",
		},
		{
			title:     "菲泽妥单抗三期临床试验达到主要终点",
			source:    "医药魔方",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "临床试验结果显示，菲泽妥单抗在安全性和有效性方面均表现优异。",
			baseURL:   "https://www.pharmcube.com",
		},
	},
	"felzartamab": {
		{
			title:     "Felzartamab receives FDA Breakthrough Therapy designation",
			source:    "FDA News",
			platform:  "government",
			sentiment: models.Positive,
			content:   "FDA grants Breakthrough Therapy designation for felzartamab in autoimmune disorders.",
			baseURL:   "https://www.fda.gov",
		},
	},
	"尤莱利单抗": {
		{
			title:     "尤莱利单抗银屑病适应症NDA获正式受理",
			source:    "CDE官网",
			platform:  "government",
			sentiment: models.Positive,
			content:   "药品审评中心正式受理尤莱利单抗银屑病适应症的新药上市申请。",
			baseURL:   "https://www.cde.org.cn",
		},
	},
	"臧敬五": {
		{
			title:     "臧敬五博士荣获生物医药创新领袖奖",
			source:    "中国生物技术协会",
			platform:  "industry media",
			sentiment: models.Positive,
			content:   "表彰其在生物医药创新领域的杰出贡献和领导力。",
			baseURL:   "https://www.cnbio.net",
		},
	},
}

// %s заменяется ключевым словом.
var genericTemplates = []template{
	{
		title:     "%s research update reports major breakthrough",
		source:    "BioPharm Network",
		platform:  "industry media",
		sentiment: models.Positive,
		content:   "%s has made encouraging progress in recent studies, pointing to solid development prospects.",
		baseURL:   "https://www.biopharm.net",
	},
	{
		title:     "%s earns strong recognition from industry experts",
		source:    "Pharma Watch",
		platform:  "industry media",
		sentiment: models.Positive,
		content:   "Industry observers gave a favourable assessment of the growth potential of %s.",
		baseURL:   "https://www.pharmwatch.cn",
	},
}

var genericTemplatesZH = []template{
	{
		title:     "%s最新研发进展获得重要突破",
		source:    "生物医药网",
		platform:  "industry media",
		sentiment: models.Positive,
		content:   "%s在临床研究中取得积极进展，显示出良好的发展前景。",
		baseURL:   "https://www.biopharm.net",
	},
	{
		title:     "%s获得行业专家高度认可",
		source:    "医药观察家",
		platform:  "industry media",
		sentiment: models.Positive,
		content:   "业内专家对%s的发展潜力给予积极评价。",
		baseURL:   "https://www.pharmwatch.cn",
	},
}
