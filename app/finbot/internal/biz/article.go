package biz

import (
	"context"
	"strings"
)

// ArticleRequest 用户提交的文章地址，只校验非空
type ArticleRequest struct {
	URL string
}

// NewArticleRequest 去除首尾空白后构造请求，空输入返回 VALIDATION_FAILURE
func NewArticleRequest(raw string) (ArticleRequest, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ArticleRequest{}, ErrValidation()
	}
	return ArticleRequest{URL: u}, nil
}

// ArticleContent 抽取出的文章正文
type ArticleContent struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Excerpt  string
	Text     string
}

// AnalysisPrompt 发送给模型的完整提示词
type AnalysisPrompt string

// AnalysisReport 模型返回的原始 markdown 报告
type AnalysisReport struct {
	Markdown string
	Model    string
}

// Analysis 一次成功的分析结果
type Analysis struct {
	Article *ArticleContent
	Report  *AnalysisReport
}

// ArticleFetcher 抓取文章并抽取正文
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*ArticleContent, error)
}

// ReportGenerator 调用模型生成报告
type ReportGenerator interface {
	// Preflight 在任何网络请求之前检查凭证
	Preflight() error
	Generate(ctx context.Context, prompt AnalysisPrompt) (*AnalysisReport, error)
}
