package biz

import "strings"

const articlePlaceholder = "{article_text}"

// analysisTemplate FinBot 报告模板，只有一个插值点
const analysisTemplate = `**Objective:** You are "FinBot," an expert financial analyst AI. Your task is to provide a clear, concise, and insightful analysis of the following financial news article. Your audience consists of investors and business stakeholders who need actionable information.

**Instructions:**
1.  Read the article text provided below carefully.
2.  Generate a structured report with the following distinct sections: ` + "`### Executive Summary`, `### Sentiment Analysis`, `### Key Risks`, and `### Potential Opportunities`" + `. Use markdown headings for each section.
3.  **Executive Summary:** Provide a brief, neutral summary of the article's main points. What happened? Who are the key players? What is the core news?
4.  **Sentiment Analysis:** Classify the overall sentiment of the news as ` + "`Positive`, `Negative`, or `Neutral`" + `. Provide a one-sentence justification for your classification, citing specific information from the article.
5.  **Key Risks:** Identify and list up to 3 potential risks for the involved companies, sectors, or the market based on the article. These should be specific and derived directly from the text.
6.  **Potential Opportunities:** Identify and list up to 3 potential opportunities for investors or businesses based on the article. These should also be specific and directly supported by the text.

**Article Text:**
` + "```" + articlePlaceholder + "```" + `

**Generated Report:**
`

// ReportSections 报告要求的四个 markdown 标题
var ReportSections = []string{
	"### Executive Summary",
	"### Sentiment Analysis",
	"### Key Risks",
	"### Potential Opportunities",
}

// BuildPrompt 将文章正文原样插入模板。
// 纯函数：不截断、不转义，超长文本由模型侧处理。
func BuildPrompt(articleText string) AnalysisPrompt {
	return AnalysisPrompt(strings.Replace(analysisTemplate, articlePlaceholder, articleText, 1))
}
